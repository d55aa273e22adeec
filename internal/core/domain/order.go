package domain

import "time"

// Order is a purchase of one or more products by a customer.
type Order struct {
	ID         string    `json:"id" bson:"_id"`
	ProductIDs []string  `json:"products_id" bson:"products_id"`
	TotalPrice uint32    `json:"total_price" bson:"total_price"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// OrderPatch carries the optional fields of an admin order update.
type OrderPatch struct {
	ProductIDs *[]string
	TotalPrice *uint32
}

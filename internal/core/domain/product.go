package domain

// Category classifies a product. Stored and serialized as its number.
type Category uint8

const (
	CategoryHelmet Category = 0
	CategoryBike   Category = 1
)

func (c Category) String() string {
	switch c {
	case CategoryHelmet:
		return "Helmet"
	case CategoryBike:
		return "Bike"
	default:
		return "Unknown"
	}
}

// MaxDiscount is the upper bound of Product.Discount, in percent.
const MaxDiscount = 100

// Product is an item of the catalog.
type Product struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Price       uint32   `json:"price" bson:"price"`
	Description string   `json:"description" bson:"description"`
	Images      []string `json:"images" bson:"images"`
	Discount    uint8    `json:"discount" bson:"discount"`
	Category    Category `json:"category" bson:"category"`
}

// DiscountedPrice returns the price after applying the discount, rounded down.
func (p Product) DiscountedPrice() uint32 {
	d := uint64(p.Discount)
	if d > MaxDiscount {
		d = MaxDiscount
	}
	return uint32(uint64(p.Price) * (MaxDiscount - d) / MaxDiscount)
}

// ProductPatch carries the optional fields of a product update.
type ProductPatch struct {
	Name        *string
	Price       *uint32
	Description *string
	Images      *[]string
	Discount    *uint8
	Category    *Category
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil &&
		p.Images == nil && p.Discount == nil && p.Category == nil
}

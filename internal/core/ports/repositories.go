package ports

import (
	"context"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
// Email uniqueness is enforced by the backend; violations return domain.ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines persistence for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the products that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// FindMaxDiscount returns the product with the highest discount.
	FindMaxDiscount(ctx context.Context) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Update(ctx context.Context, id string, patch domain.OrderPatch) error
	Delete(ctx context.Context, id string) error
}

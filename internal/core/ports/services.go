package ports

import (
	"context"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by register and login: the account plus a fresh token pair.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// UpdateUserInput carries the optional fields of a profile update.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, input UpdateUserInput) error
	Delete(ctx context.Context, userID string) error
}

// CreateProductInput is the DTO for ProductService.Create.
type CreateProductInput struct {
	Name        string
	Price       uint32
	Description string
	Images      []string
	Discount    uint8
	Category    domain.Category
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	MostAdvantageous(ctx context.Context) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) error
	Delete(ctx context.Context, id string) error
}

// UpdateOrderInput carries the optional fields of an admin order update.
// When ProductIDs is set and TotalPrice is not, the total is recomputed.
type UpdateOrderInput struct {
	ProductIDs []string
	TotalPrice *uint32
}

type OrderService interface {
	Create(ctx context.Context, customerID string, productIDs []string) (*domain.Order, error)
	// Get returns the order if the caller owns it or is an Admin; otherwise NotFound.
	Get(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) error
	Delete(ctx context.Context, id string) error
}

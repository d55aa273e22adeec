package handler

import (
	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50" example:"John Doe"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserInfo is the public view of an account, shared by register, login and me.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- User ---

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// --- Product ---

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2" example:"Mountain bike"`
	Price       uint32   `json:"price" example:"1200"`
	Description string   `json:"description" validate:"required,min=2" example:"Full suspension trail bike"`
	Images      []string `json:"images"`
	Discount    uint8    `json:"discount" validate:"max=100" example:"15"`
	Category    uint8    `json:"category" validate:"max=1" example:"1"`
}

// updateProductRequest accepts the identifier as "id" or, for older
// clients, "_id".
type updateProductRequest struct {
	ID          string    `json:"id"`
	LegacyID    string    `json:"_id"`
	Name        *string   `json:"name" validate:"omitempty,min=2"`
	Price       *uint32   `json:"price"`
	Description *string   `json:"description" validate:"omitempty,min=2"`
	Images      *[]string `json:"images"`
	Discount    *uint8    `json:"discount" validate:"omitempty,max=100"`
	Category    *uint8    `json:"category" validate:"omitempty,max=1"`
}

// --- Order ---

type createOrderRequest struct {
	ProductIDs []string `json:"products_id" validate:"required,min=1"`
}

type updateOrderRequest struct {
	ID         string   `json:"id"`
	LegacyID   string   `json:"_id"`
	ProductIDs []string `json:"products_id" validate:"omitempty,min=1"`
	TotalPrice *uint32  `json:"total_price"`
}

// --- Mappers ---

func toUserInfo(u *domain.User) UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func toUserInfos(users []domain.User) []UserInfo {
	out := make([]UserInfo, 0, len(users))
	for i := range users {
		out = append(out, toUserInfo(&users[i]))
	}
	return out
}

func (r createProductRequest) toInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Images:      r.Images,
		Discount:    r.Discount,
		Category:    domain.Category(r.Category),
	}
}

func (r updateProductRequest) id() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LegacyID
}

func (r updateProductRequest) toPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Images:      r.Images,
		Discount:    r.Discount,
	}
	if r.Category != nil {
		c := domain.Category(*r.Category)
		patch.Category = &c
	}
	return patch
}

func (r updateOrderRequest) id() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LegacyID
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

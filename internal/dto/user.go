package dto

import "time"

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserResponse is the sanitized user view. Password and verification-code
// fields never appear here.
type UserResponse struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phone     *string      `json:"phone"`
	IsActive  bool         `json:"isActive"`
	PhotoPath string       `json:"photoPath,omitempty"`
	Role      RoleResponse `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// UpdateProfileRequest carries a partial update: nil fields are left
// untouched. A supplied empty phone clears the stored number.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PhotoPath *string `json:"photoPath,omitempty"`
}

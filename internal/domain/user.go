package domain

import "time"

const (
	// DefaultRoleSlug is the role assigned to self-registered accounts.
	DefaultRoleSlug = "user"
	AdminRoleSlug   = "admin"

	// DefaultPhotoPath is the placeholder profile photo. It is shared by
	// every account without an uploaded photo and must never be deleted.
	DefaultPhotoPath = "uploads/defaults/profile.png"
)

type User struct {
	ID           UserID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string  `gorm:"type:text;not null" json:"firstName"`
	LastName     string  `gorm:"type:text;not null" json:"lastName"`
	Email        string  `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone        *string `gorm:"type:text" json:"phone"`
	PasswordHash string  `gorm:"type:text;not null" json:"-"`
	IsActive     bool    `gorm:"not null;default:false" json:"isActive"`
	RoleID       RoleID  `gorm:"type:uuid;not null" json:"-"`
	Role         *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	// Pending two-factor login state. Only the hash of the code is kept;
	// both fields are cleared on successful verification or lazy expiry.
	VerificationCodeHash *string    `gorm:"type:text" json:"-"`
	CodeExpiresAt        *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// HasPendingCode reports whether a verification code is on record,
// regardless of whether it has expired.
func (u *User) HasPendingCode() bool {
	return u.VerificationCodeHash != nil && u.CodeExpiresAt != nil
}

type Role struct {
	ID          RoleID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Slug        string    `gorm:"type:text;not null;uniqueIndex:ux_roles_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
	UpdatedAt   time.Time `gorm:"not null" json:"-"`
}

func (Role) TableName() string { return "roles" }

// Photo is the profile photo record. One row per user; the Path points at
// the stored asset or at DefaultPhotoPath.
type Photo struct {
	ID        PhotoID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_photos_user" json:"userId"`
	Path      string    `gorm:"type:text;not null" json:"path"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Photo) TableName() string { return "photos" }

package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleBusiness Role = "business"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleBusiness || r == RoleCustomer
}

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null"`
	UsernameKey  string `gorm:"size:150;not null;uniqueIndex"`
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UsernameKey folds a username for case-insensitive uniqueness and lookup.
func UsernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// BeforeCreate fills the unique username_key column. Usernames are not editable after creation.
func (u *User) BeforeCreate(*gorm.DB) error {
	u.UsernameKey = UsernameKey(u.Username)
	return nil
}

// Caller is the authenticated identity of a request, resolved once by middleware.
type Caller struct {
	UserID   int64
	Username string
	Role     Role
	IsAdmin  bool
}

func (c *Caller) IsBusiness() bool { return c != nil && c.Role == RoleBusiness }
func (c *Caller) IsCustomer() bool { return c != nil && c.Role == RoleCustomer }

package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Access checks compare against these values only.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleDispatch = "dispatch"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleDispatch:
		return true
	}
	return false
}

type User struct {
	ID       primitive.ObjectID
	Name     string
	Email    string
	Password string // bcrypt hash, never plaintext
	Role     string
	Phone    string

	LoginAttempts        int
	LockUntil            *time.Time
	LastLogin            *time.Time
	PasswordResetToken   string
	PasswordResetExpires *time.Time
	RefreshToken         string

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether the account is inside its lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

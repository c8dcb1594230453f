package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Role of a user
type Role string

const (
	RoleSalonOwner Role = "SALON_OWNER"
	RoleClient     Role = "CLIENT"
)

// GuestAuthIDPrefix marks users created from a booking form without an identity-provider account
const GuestAuthIDPrefix = "guest_"

// User is a salon owner or a client
type User struct {
	ID     string
	AuthID string
	Email  string
	Name   string
	Phone  *string
	Role   Role

	// Filled when the user owns a salon
	OwnedSalon *Salon

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSalonOwner reports the owner role
func (u *User) IsSalonOwner() bool {
	return u.Role == RoleSalonOwner
}

// IsGuest reports a user created without an identity-provider account
func (u *User) IsGuest() bool {
	return strings.HasPrefix(u.AuthID, GuestAuthIDPrefix)
}

// NormalizeEmail lower-cases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseEmail validates an RFC 5322 address and returns only the normalized bare address,
// so "Bob <Bob@x.com>" becomes "bob@x.com"
func ParseEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return NormalizeEmail(addr.Address), nil
}

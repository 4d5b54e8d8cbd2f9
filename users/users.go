package users

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
)

// Role is the single console section a user belongs to.
type Role string

const (
	RoleAdmin    Role = "admin"    // Manages staff accounts, plans and reporting
	RoleSales    Role = "sales"    // Customers, transactions and payments
	RoleTech     Role = "tech"     // Tickets and equipment
	RoleCustomer Role = "customer" // Own services, bills and tickets
)

// Roles lists every valid role in menu order.
var Roles = []Role{RoleAdmin, RoleSales, RoleTech, RoleCustomer}

// ParseRole accepts only the closed set of roles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%q: %w", s, poserrors.ErrUnknownRole)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleTech, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           string `json:"id,omitempty"`       // Unique identifier for the user
	Username     string `json:"username,omitempty"` // Login name
	PasswordHash string `json:"-"`                  // never serialize
	FullName     string `json:"full_name,omitempty"`
	Role         Role   `json:"role"`
	Blocked      bool   `json:"blocked,omitempty"` // Blocked, has the user been blocked from logging in
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Authenticate checks the password and that the account may log in.
func (u *User) Authenticate(password string) error {
	if !CheckPasswordHash(password, u.PasswordHash) {
		return poserrors.ErrInvalidCredentials
	}
	if u.Blocked {
		return poserrors.ErrUserBlocked
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %s: %w", u.Username, poserrors.ErrUnknownRole)
	}
	return nil
}

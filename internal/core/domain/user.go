package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// User models an account. Vendor fields are only meaningful when Role is RoleVendor.
type User struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	PasswordHash  string          `json:"-"`
	Role          string          `json:"role"`
	VendorName    string          `json:"vendor_name,omitempty"`
	VendorRevenue decimal.Decimal `json:"vendor_revenue"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// ValidRole reports whether role is one a user may register with.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleVendor
}

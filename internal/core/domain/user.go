package domain

import "time"

// Role controls what a user may do. Viewers read, accountants manage sales
// and treasury entries, admins additionally manage users and rate bundles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleViewer     Role = "VIEWER"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// CanManageSales reports whether the role may create or mutate sales and
// manual transactions.
func (r Role) CanManageSales() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// CanManageUsers reports whether the role may administer users and rates.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

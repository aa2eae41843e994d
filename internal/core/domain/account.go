package domain

import "time"

// Role is one of the fixed staff roles an account can hold.
type Role string

const (
	RoleDoctor        Role = "DOCTOR"
	RoleNurse         Role = "NURSE"
	RoleReceptionist  Role = "RECEPTIONIST"
	RoleAdministrator Role = "ADMINISTRATOR"
	RolePharmacist    Role = "PHARMACIST"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleDoctor, RoleNurse, RoleReceptionist, RoleAdministrator, RolePharmacist}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleReceptionist, RoleAdministrator, RolePharmacist:
		return true
	}
	return false
}

// Account models a staff member who can log in.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the secret-free view of an Account handed across the
// authentication boundary.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Identity projects the account onto its non-secret fields.
func (a *Account) Identity() Identity {
	return Identity{
		ID:       a.ID,
		Username: a.Username,
		Role:     a.Role,
		Name:     a.Name,
		Email:    a.Email,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	Identity Identity
}

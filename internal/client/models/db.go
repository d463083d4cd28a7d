// Package models defines the console's domain types: the authenticated user,
// the session pair, navigation entries and display preferences.
package models

// Role controls which views and navigation entries a user can reach.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTreasurer Role = "treasurer"
	RoleResident  Role = "resident"
	RoleSecurity  Role = "security"
)

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTreasurer, RoleResident, RoleSecurity:
		return true
	}
	return false
}

package models

// Principal is the authenticated caller's identity resolved from the
// access token. It is passed explicitly to handlers and services instead
// of being read from scattered context keys.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin reports whether the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

package models

// Actor identifies the authenticated caller of a service operation. It is
// passed explicitly through every handler call instead of being read from an
// ambient request context.
type Actor struct {
	UserID string
	Role   string
}

// IsInRole reports whether the actor carries the given role
func (a Actor) IsInRole(role string) bool {
	return a.Role == role
}

// IsAdmin reports whether the actor is an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

package policy

import "strings"

// Role governs visibility and permitted actions.
type Role string

const (
	Admin      Role = "admin"
	Dispatcher Role = "dispatcher"
	Responder  Role = "responder"
)

// ParseRole maps a session metadata value onto a Role. Unknown and empty
// values resolve to Responder.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Admin:
		return Admin
	case Dispatcher:
		return Dispatcher
	default:
		return Responder
	}
}

// Principal is the authenticated user a request or page session acts for.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// NewPrincipal builds a Principal, resolving the raw role value.
func NewPrincipal(id, email, role string) Principal {
	return Principal{ID: id, Email: email, Role: ParseRole(role)}
}

// Roles is a set of roles.
type Roles map[Role]struct{}

// RoleSet builds a Roles set.
func RoleSet(roles ...Role) Roles {
	s := make(Roles, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains role. The role is normalised first,
// so an unknown role is checked as Responder.
func (s Roles) Has(role Role) bool {
	_, ok := s[ParseRole(string(role))]
	return ok
}

// List returns the roles in admin, dispatcher, responder order.
func (s Roles) List() []Role {
	var out []Role
	for _, r := range []Role{Admin, Dispatcher, Responder} {
		if _, ok := s[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

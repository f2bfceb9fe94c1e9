package domain

import "time"

// Identity is the immutable snapshot of an authenticated principal. It is
// built once per successful authentication or token validation and discarded
// at the end of the request.
type Identity struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
	Roles       []Role
}

// NewIdentity builds an Identity from a stored user record.
func NewIdentity(u *User) *Identity {
	roles := make([]Role, len(u.Roles))
	copy(roles, u.Roles)
	return &Identity{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		Roles:       roles,
	}
}

// Username is the display name derived from the profile fields.
func (i *Identity) Username() string {
	return i.FirstName + " " + i.LastName
}

// HasAnyRole reports whether the identity holds at least one of the given roles.
func (i *Identity) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// RoleNames returns the role set as plain strings, for response payloads.
func (i *Identity) RoleNames() []string {
	names := make([]string, len(i.Roles))
	for idx, r := range i.Roles {
		names[idx] = string(r)
	}
	return names
}

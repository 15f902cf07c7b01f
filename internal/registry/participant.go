package registry

import "time"

// Role is one of the two independent memberships a participant can hold.
type Role string

const (
	RoleRider  Role = "RIDER"
	RoleDriver Role = "DRIVER"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRider:
		return RoleRider, nil
	case RoleDriver:
		return RoleDriver, nil
	default:
		return "", ErrUnknownRole
	}
}

// Participant holds both role flags for one identity. A participant may
// legally hold both roles; rows are created on first registration and
// never removed.
type Participant struct {
	ID        string    `json:"id"`
	IsRider   bool      `json:"is_rider"`
	IsDriver  bool      `json:"is_driver"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the participant holds the given role.
func (p *Participant) HasRole(role Role) bool {
	switch role {
	case RoleRider:
		return p.IsRider
	case RoleDriver:
		return p.IsDriver
	default:
		return false
	}
}

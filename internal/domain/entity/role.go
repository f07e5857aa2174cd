package entity

import "strconv"

// RoleID identifies the authorization tier of a user.
type RoleID int

const (
	// RoleAdmin is the administrative tier.
	RoleAdmin RoleID = 1
	// RoleMember is the tier assigned at signup.
	RoleMember RoleID = 2
)

// DefaultRole is the tier every new account starts with.
const DefaultRole = RoleMember

// String returns the decimal form of the role id.
func (r RoleID) String() string {
	return strconv.Itoa(int(r))
}

// IsValid checks if the RoleID is a known tier.
func (r RoleID) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

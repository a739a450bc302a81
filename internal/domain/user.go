package domain

import (
	"fmt"
	"time"
)

// UserStatus is the approval state of a profile
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// ParseUserStatus converts a wire value into a UserStatus
func ParseUserStatus(s string) (UserStatus, error) {
	status := UserStatus(s)
	switch status {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUserStatus, s)
	}
}

// Role is a privilege attached to a profile
type Role string

// RoleRoot allows overriding bookings and managing users
const RoleRoot Role = "root"

// UserProfile is the stored profile of a signed-in user
type UserProfile struct {
	ID        string
	Name      string
	Email     string
	AvatarURL *string
	Status    UserStatus
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole returns true if the profile carries the role
func (u *UserProfile) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsRoot returns true if the profile carries the root role
func (u *UserProfile) IsRoot() bool {
	return u.HasRole(RoleRoot)
}

// IsApproved returns true if the profile may use the dashboard
func (u *UserProfile) IsApproved() bool {
	return u.Status == UserStatusApproved
}

// WithRole returns the roles with role added once
func (u *UserProfile) WithRole(role Role) []Role {
	if u.HasRole(role) {
		return append([]Role(nil), u.Roles...)
	}
	return append(append([]Role(nil), u.Roles...), role)
}

// WithoutRole returns the roles with role removed
func (u *UserProfile) WithoutRole(role Role) []Role {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r != role {
			roles = append(roles, r)
		}
	}
	return roles
}

// ProfileFields are the self-managed parts of a profile written on login
type ProfileFields struct {
	Name      string
	Email     string
	AvatarURL *string
}

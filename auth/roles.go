// Package auth is the single source of truth for role resolution and the
// role predicates consumed by every handler.
package auth

import (
	"fmt"

	"eventhub/data/models"
)

// Role is the closed set of meaningful roles.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleOrganizer   Role = "Organizer"
	RoleParticipant Role = "Participant"
)

// ParseRole maps a group name to a Role, rejecting anything outside the
// closed set.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleAdmin, RoleOrganizer, RoleParticipant:
		return Role(name), nil
	}
	return "", fmt.Errorf("unknown role: %q", name)
}

// Identity is the resolved view of a requester. The zero value is anonymous
// and fails every predicate.
type Identity struct {
	UserID    int64
	Username  string
	Superuser bool
	Roles     []Role
}

// NewIdentity builds an Identity from a user record and its group names.
// Group names outside the closed role set are ignored.
func NewIdentity(u models.User, groupNames []string) Identity {
	id := Identity{
		UserID:    u.ID,
		Username:  u.Username,
		Superuser: u.IsSuperuser,
	}
	for _, name := range groupNames {
		if role, err := ParseRole(name); err == nil {
			id.Roles = append(id.Roles, role)
		}
	}
	return id
}

func (id Identity) Authenticated() bool {
	return id.UserID != 0
}

func (id Identity) hasRole(r Role) bool {
	if !id.Authenticated() {
		return false
	}
	for _, role := range id.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity is a superuser or belongs to the
// Admin group. Superusers always count as Admin.
func IsAdmin(id Identity) bool {
	return id.Authenticated() && (id.Superuser || id.hasRole(RoleAdmin))
}

func IsOrganizer(id Identity) bool {
	return id.hasRole(RoleOrganizer)
}

func IsParticipant(id Identity) bool {
	return id.hasRole(RoleParticipant)
}

func IsAdminOrOrganizer(id Identity) bool {
	return IsAdmin(id) || IsOrganizer(id)
}

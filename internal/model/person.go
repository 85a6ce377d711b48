package model

import (
	"slices"
	"time"
)

// Role is a permission granted to a person.
type Role string

const (
	RoleUser                 Role = "USER"
	RoleDepartmentHead       Role = "DEPARTMENT_HEAD"
	RoleSecondStageAuthority Role = "SECOND_STAGE_AUTHORITY"
	RoleBoss                 Role = "BOSS"
	RoleOffice               Role = "OFFICE"
	RoleInactive             Role = "INACTIVE"
)

// MailNotification is a kind of notification a person subscribed to.
type MailNotification string

const (
	NotificationUser                 MailNotification = "NOTIFICATION_USER"
	NotificationDepartmentHead       MailNotification = "NOTIFICATION_DEPARTMENT_HEAD"
	NotificationSecondStageAuthority MailNotification = "NOTIFICATION_SECOND_STAGE_AUTHORITY"
	NotificationBoss                 MailNotification = "NOTIFICATION_BOSS"
	NotificationOffice               MailNotification = "NOTIFICATION_OFFICE"
)

// Person is an employee known to the leave management.
type Person struct {
	ID            string             `json:"id"`
	Username      string             `json:"username"`
	PasswordHash  string             `json:"-"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	Permissions   []Role             `json:"permissions"`
	Notifications []MailNotification `json:"notifications"`
	CreatedAt     time.Time          `json:"created_at"`
}

// HasRole reports whether the person was granted role.
func (p *Person) HasRole(role Role) bool {
	return slices.Contains(p.Permissions, role)
}

// HasAnyRole reports whether the person was granted at least one of roles.
func (p *Person) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// HasNotification reports whether the person subscribed to n.
func (p *Person) HasNotification(n MailNotification) bool {
	return slices.Contains(p.Notifications, n)
}

// IsActive reports whether the person is not deactivated.
func (p *Person) IsActive() bool {
	return !p.HasRole(RoleInactive)
}

// NiceName returns "First Last", falling back to the username.
func (p *Person) NiceName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.Username
	}
}

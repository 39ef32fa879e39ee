package model

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the authorization edge between a user and a company.
// Exactly one row exists per (user, company) pair.
type Membership struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_company" json:"user_id"`
	CompanyID          uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_company" json:"company_id"`
	TenantID           string        `gorm:"type:text;not null;index" json:"tenant_id"`
	CompanyRole        CompanyRole   `gorm:"type:text;not null" json:"company_role"`
	PlatformRole       *PlatformRole `gorm:"type:text" json:"platform_role,omitempty"`
	IsActive           bool          `gorm:"not null;default:true" json:"is_active"`
	InvitedByID        *uuid.UUID    `gorm:"column:invited_by;type:uuid" json:"invited_by,omitempty"`
	InvitedAt          *time.Time    `json:"invited_at,omitempty"`
	AcceptedAt         *time.Time    `json:"accepted_at,omitempty"`
	DeactivatedByID    *uuid.UUID    `gorm:"column:deactivated_by;type:uuid" json:"deactivated_by,omitempty"`
	DeactivatedAt      *time.Time    `json:"deactivated_at,omitempty"`
	DeactivationReason *string       `gorm:"type:text" json:"deactivation_reason,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// MembershipChanges is a partial update of a membership. Nil fields are left
// untouched.
type MembershipChanges struct {
	CompanyRole  *CompanyRole
	PlatformRole *PlatformRole
	IsActive     *bool
}

// RemovesOwner reports whether applying the changes to m would take away an
// active owner seat.
func (c MembershipChanges) RemovesOwner(m *Membership) bool {
	if !m.IsActive || m.CompanyRole != CompanyRoleOwner {
		return false
	}
	if c.IsActive != nil && !*c.IsActive {
		return true
	}
	return c.CompanyRole != nil && *c.CompanyRole != CompanyRoleOwner
}

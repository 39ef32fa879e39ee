package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipInvite is a pending, single-use offer to join a company. Only a
// hash of the token is stored; the raw token travels in the invite email.
type MembershipInvite struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string      `gorm:"type:citext;not null;index" json:"email"`
	CompanyID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"company_id"`
	TenantID    string      `gorm:"type:text;not null;index" json:"tenant_id"`
	InvitedRole CompanyRole `gorm:"type:text;not null" json:"invited_role"`
	InvitedByID uuid.UUID   `gorm:"column:invited_by;type:uuid;not null" json:"invited_by"`
	TokenHash   string      `gorm:"type:text;uniqueIndex;not null" json:"-"`
	ExpiresAt   time.Time   `gorm:"not null" json:"expires_at"`
	AcceptedAt  *time.Time  `json:"accepted_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// Pending reports whether the invite can still be accepted at now.
func (i *MembershipInvite) Pending(now time.Time) bool {
	return i.AcceptedAt == nil && i.ExpiresAt.After(now)
}

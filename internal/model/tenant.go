package model

import "github.com/google/uuid"

// TenantContext is the resolved authorization scope of a request.
type TenantContext struct {
	UserID       uuid.UUID     `json:"user_id"`
	MembershipID uuid.UUID     `json:"membership_id"`
	TenantID     string        `json:"tenant_id"`
	CompanyID    uuid.UUID     `json:"company_id"`
	CompanyName  string        `json:"company_name"`
	CompanyRole  CompanyRole   `json:"company_role"`
	PlatformRole *PlatformRole `json:"platform_role,omitempty"`
	IsOperator   bool          `json:"is_operator"`
}

// HasCompanyRole reports whether the caller holds at least min in the active
// company.
func (t *TenantContext) HasCompanyRole(min CompanyRole) bool {
	return t != nil && t.CompanyRole.AtLeast(min)
}

// HasPlatformRole reports whether the caller holds at least min on the
// platform. Platform roles only count from inside the operator company.
func (t *TenantContext) HasPlatformRole(min PlatformRole) bool {
	return t != nil && t.IsOperator && HasPlatformRole(t.PlatformRole, min)
}

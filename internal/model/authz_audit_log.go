package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthzAuditLog records an authorization decision or a change to the
// membership ledger.
type AuthzAuditLog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Timestamp   time.Time `json:"timestamp" gorm:"default:CURRENT_TIMESTAMP"`
	ActionType  string    `json:"action_type"`
	Result      *bool     `json:"result"`
	TenantID    string    `json:"tenant_id" gorm:"index"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   string    `json:"subject_id"`
	Relation    string    `json:"relation"`
	Permission  string    `json:"permission"`
	Context     JSONMap   `json:"context" gorm:"type:jsonb"`
	RequestID   string    `json:"request_id"`
	ClientIP    string    `json:"client_ip"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for AuthzAuditLog
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}

// Constants for AuthzAuditLog action types
const (
	ActionPermissionCheck  = "permission_check"
	ActionTenantMismatch   = "tenant_mismatch"
	ActionMembershipCreate = "membership_create"
	ActionMembershipUpdate = "membership_update"
	ActionMembershipRevoke = "membership_deactivate"
	ActionOwnerTransfer    = "ownership_transfer"
	ActionInviteCreate     = "invite_create"
	ActionInviteAccept     = "invite_accept"
	ActionInviteRevoke     = "invite_revoke"
	ActionStageTransition  = "stage_transition"
	ActionCompanySettings  = "company_settings_update"
)

// Subject is the actor of an audited action.
type Subject struct {
	Type string
	ID   string
}

// Entity is the target of an audited action.
type Entity struct {
	Type string
	ID   string
}

func UserSubject(id uuid.UUID) Subject {
	return Subject{Type: "user", ID: id.String()}
}

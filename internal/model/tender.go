package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TenderStatus string

const (
	TenderStatusOpen      TenderStatus = "open"
	TenderStatusClosed    TenderStatus = "closed"
	TenderStatusAwarded   TenderStatus = "awarded"
	TenderStatusCancelled TenderStatus = "cancelled"
)

// Tender is a public procurement notice tracked by a tenant. ExternalRef is
// the publication id on TenderNed when the tender was imported from there.
type Tender struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID             string         `gorm:"type:text;not null;uniqueIndex:idx_tenders_tenant_ref" json:"tenant_id"`
	ExternalRef          string         `gorm:"type:text;not null;uniqueIndex:idx_tenders_tenant_ref" json:"external_ref"`
	Title                string         `gorm:"type:text;not null" json:"title"`
	ContractingAuthority string         `gorm:"type:text;not null;default:''" json:"contracting_authority"`
	Description          string         `gorm:"type:text;not null;default:''" json:"description"`
	CPVCodes             pq.StringArray `gorm:"column:cpv_codes;type:text[];not null;default:'{}'" json:"cpv_codes"`
	EstimatedValue       *int64         `json:"estimated_value,omitempty"`
	Deadline             *time.Time     `json:"deadline,omitempty"`
	Status               TenderStatus   `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedByID          uuid.UUID      `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// KnockOut flags a CKV requirement the client fails. Any flagged knock-out
// disqualifies the client from the tender regardless of IKP score.
type KnockOut struct {
	Code    string `json:"code" validate:"required,max=64"`
	Label   string `json:"label" validate:"required,max=255"`
	Flagged bool   `json:"flagged"`
}

type KnockOuts []KnockOut

func (k KnockOuts) Value() (driver.Value, error) {
	if k == nil {
		k = KnockOuts{}
	}
	return jsonValue(k)
}

func (k *KnockOuts) Scan(value interface{}) error {
	if value == nil {
		*k = KnockOuts{}
		return nil
	}
	return scanJSON(value, k)
}

// ClientCompany is a tenant-scoped record of a company the tenant bids for.
type ClientCompany struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    string       `gorm:"type:text;not null;uniqueIndex:idx_client_companies_tenant_name" json:"tenant_id"`
	Name        string       `gorm:"type:citext;not null;uniqueIndex:idx_client_companies_tenant_name" json:"name"`
	KvKNumber   *string      `gorm:"column:kvk_number;type:text" json:"kvk_number,omitempty"`
	Sector      string       `gorm:"type:text;not null;default:''" json:"sector"`
	City        string       `gorm:"type:text;not null;default:''" json:"city"`
	IKPScore    *int         `gorm:"column:ikp_score" json:"ikp_score,omitempty"`
	KnockOuts   KnockOuts    `gorm:"type:jsonb;not null;default:'[]'" json:"knock_outs"`
	Status      ClientStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	ArchivedAt  *time.Time   `json:"archived_at,omitempty"`
	CreatedByID uuid.UUID    `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Qualified reports whether the client passes every CKV knock-out.
func (c *ClientCompany) Qualified() bool {
	for _, k := range c.KnockOuts {
		if k.Flagged {
			return false
		}
	}
	return true
}

package model

import (
	"database/sql/driver"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Company is a tenant. TenantID is generated once and never changes.
type Company struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                 string             `gorm:"type:citext;uniqueIndex;not null" json:"name"`
	KvKNumber            *string            `gorm:"column:kvk_number;type:text" json:"kvk_number,omitempty"`
	TenantID             string             `gorm:"type:text;uniqueIndex;not null;<-:create" json:"tenant_id"`
	IsInternal           bool               `gorm:"not null;default:false" json:"is_internal"`
	Settings             CompanySettings    `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
	SubscriptionPlan     string             `gorm:"type:text;not null;default:'trial'" json:"subscription_plan"`
	SubscriptionStatus   SubscriptionStatus `gorm:"type:text;not null;default:'trial'" json:"subscription_status"`
	SubscriptionRenewsAt *time.Time         `json:"subscription_renews_at,omitempty"`
	CreatedByID          *uuid.UUID         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	ArchivedAt           *time.Time         `json:"archived_at,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type Branding struct {
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type CompanySettings struct {
	Branding            Branding    `json:"branding"`
	AllowedEmailDomains []string    `json:"allowed_email_domains"`
	Contact             ContactInfo `json:"contact"`
}

// RestrictsDomains reports whether the company limits members to a set of
// email domains.
func (s CompanySettings) RestrictsDomains() bool {
	return len(s.AllowedEmailDomains) > 0
}

// AllowsDomain reports whether domain is on the allowed list. Comparison is
// case-insensitive.
func (s CompanySettings) AllowsDomain(domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	return slices.ContainsFunc(s.AllowedEmailDomains, func(d string) bool {
		return strings.ToLower(strings.TrimSpace(d)) == domain
	})
}

func (s CompanySettings) Value() (driver.Value, error) {
	if s.AllowedEmailDomains == nil {
		s.AllowedEmailDomains = []string{}
	}
	return jsonValue(s)
}

func (s *CompanySettings) Scan(value interface{}) error {
	if value == nil {
		*s = CompanySettings{}
		return nil
	}
	return scanJSON(value, s)
}

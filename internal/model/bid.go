package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Bid is one tender by client company engagement. It owns exactly four
// stages, seeded in draft on creation.
type Bid struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID        string         `gorm:"type:text;not null;index" json:"tenant_id"`
	TenderID        uuid.UUID      `gorm:"type:uuid;not null" json:"tender_id"`
	ClientCompanyID *uuid.UUID     `gorm:"type:uuid" json:"client_company_id,omitempty"`
	Title           string         `gorm:"type:text;not null" json:"title"`
	CurrentStage    StageName      `gorm:"type:text;not null;default:'storyline'" json:"current_stage"`
	AssignedUserIDs pq.StringArray `gorm:"column:assigned_user_ids;type:text[];not null;default:'{}'" json:"assigned_user_ids"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedByID     uuid.UUID      `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	UpdatedByID     *uuid.UUID     `gorm:"column:updated_by;type:uuid" json:"updated_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Stages []BidStage `gorm:"foreignKey:BidID" json:"stages,omitempty"`
}

// NewBid returns a bid with all four stages in draft.
func NewBid(tenantID string, tenderID uuid.UUID, clientID *uuid.UUID, title string, createdBy uuid.UUID) *Bid {
	bid := &Bid{
		ID:              uuid.New(),
		TenantID:        tenantID,
		TenderID:        tenderID,
		ClientCompanyID: clientID,
		Title:           title,
		CurrentStage:    StageStoryline,
		AssignedUserIDs: pq.StringArray{},
		CreatedByID:     createdBy,
	}
	for _, name := range StageOrder {
		bid.Stages = append(bid.Stages, BidStage{
			ID:       uuid.New(),
			BidID:    bid.ID,
			TenantID: tenantID,
			Stage:    name,
			Status:   StatusDraft,
			Criteria: Criteria{},
		})
	}
	return bid
}

// Stage returns the stage row with the given name, or nil.
func (b *Bid) Stage(name StageName) *BidStage {
	for i := range b.Stages {
		if b.Stages[i].Stage == name {
			return &b.Stages[i]
		}
	}
	return nil
}

// Completed reports whether the final stage has been approved.
func (b *Bid) Completed() bool {
	return b.CompletedAt != nil
}

// IsAssigned reports whether userID is on the bid team.
func (b *Bid) IsAssigned(userID uuid.UUID) bool {
	id := userID.String()
	for _, assigned := range b.AssignedUserIDs {
		if assigned == id {
			return true
		}
	}
	return false
}

package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

type StageName string

const (
	StageStoryline StageName = "storyline"
	StageVersion65 StageName = "version_65"
	StageVersion95 StageName = "version_95"
	StageFinal     StageName = "final"
)

// StageOrder is the fixed sequence every bid moves through.
var StageOrder = []StageName{StageStoryline, StageVersion65, StageVersion95, StageFinal}

func (n StageName) Index() int {
	for i, s := range StageOrder {
		if s == n {
			return i
		}
	}
	return -1
}

func (n StageName) Valid() bool { return n.Index() >= 0 }

// Previous returns the stage before n, or false for the first stage.
func (n StageName) Previous() (StageName, bool) {
	i := n.Index()
	if i <= 0 {
		return "", false
	}
	return StageOrder[i-1], true
}

// Next returns the stage after n, or false for the final stage.
func (n StageName) Next() (StageName, bool) {
	i := n.Index()
	if i < 0 || i == len(StageOrder)-1 {
		return "", false
	}
	return StageOrder[i+1], true
}

type StageStatus string

const (
	StatusDraft         StageStatus = "draft"
	StatusSubmitted     StageStatus = "submitted"
	StatusPendingReview StageStatus = "pending_review"
	StatusApproved      StageStatus = "approved"
	StatusRejected      StageStatus = "rejected"
)

type Criterion struct {
	Code     string  `json:"code" validate:"required,max=64"`
	Title    string  `json:"title" validate:"required,max=500"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=100"`
	Response string  `json:"response,omitempty"`
}

type Criteria []Criterion

func (c Criteria) Value() (driver.Value, error) {
	if c == nil {
		c = Criteria{}
	}
	return jsonValue(c)
}

func (c *Criteria) Scan(value interface{}) error {
	if value == nil {
		*c = Criteria{}
		return nil
	}
	return scanJSON(value, c)
}

type Attachment struct {
	Name       string `json:"name" validate:"required"`
	StorageKey string `json:"storage_key" validate:"required"`
}

type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		a = Attachments{}
	}
	return jsonValue(a)
}

func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}
	return scanJSON(value, a)
}

// Citation is a source the AI drafting step relied on.
type Citation struct {
	Source  string `json:"source"`
	Excerpt string `json:"excerpt,omitempty"`
}

type Citations []Citation

func (c Citations) Value() (driver.Value, error) {
	if c == nil {
		c = Citations{}
	}
	return jsonValue(c)
}

func (c *Citations) Scan(value interface{}) error {
	if value == nil {
		*c = Citations{}
		return nil
	}
	return scanJSON(value, c)
}

// BidStage is the persisted row for one stage of a bid. The status-specific
// columns are only read through State.
type BidStage struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BidID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_bid_stages_bid_stage" json:"bid_id"`
	TenantID    string      `gorm:"type:text;not null;index" json:"tenant_id"`
	Stage       StageName   `gorm:"type:text;not null;uniqueIndex:idx_bid_stages_bid_stage" json:"stage"`
	Status      StageStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	Content     string      `gorm:"type:text;not null;default:''" json:"content"`
	Criteria    Criteria    `gorm:"type:jsonb;not null;default:'[]'" json:"criteria"`
	Attachments Attachments `gorm:"type:jsonb;not null;default:'[]'" json:"attachments"`
	Citations   Citations   `gorm:"type:jsonb;not null;default:'[]'" json:"citations"`

	SubmittedByID   *uuid.UUID `gorm:"column:submitted_by;type:uuid" json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewerID      *uuid.UUID `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	AssignedByID    *uuid.UUID `gorm:"column:assigned_by;type:uuid" json:"assigned_by,omitempty"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	ApprovedByID    *uuid.UUID `gorm:"column:approved_by;type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedByID    *uuid.UUID `gorm:"column:rejected_by;type:uuid" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasContent reports whether the stage carries anything worth reviewing.
func (s *BidStage) HasContent() bool {
	return strings.TrimSpace(s.Content) != "" || len(s.Criteria) > 0
}

// StageState is the status of a stage together with the fields that are
// valid for that status only.
type StageState interface {
	Status() StageStatus
	// Columns returns every status column, with nil for those the state
	// does not carry.
	Columns() map[string]interface{}
}

type Draft struct {
	HasContent bool
}

type Submitted struct {
	SubmittedBy uuid.UUID
	SubmittedAt time.Time
}

type PendingReview struct {
	Submitted
	Reviewer   uuid.UUID
	AssignedBy uuid.UUID
	AssignedAt time.Time
}

type Approved struct {
	PendingReview
	ApprovedBy uuid.UUID
	ApprovedAt time.Time
}

type Rejected struct {
	PendingReview
	RejectedBy uuid.UUID
	RejectedAt time.Time
	Reason     string
}

func (Draft) Status() StageStatus         { return StatusDraft }
func (Submitted) Status() StageStatus     { return StatusSubmitted }
func (PendingReview) Status() StageStatus { return StatusPendingReview }
func (Approved) Status() StageStatus      { return StatusApproved }
func (Rejected) Status() StageStatus      { return StatusRejected }

func emptyColumns(status StageStatus) map[string]interface{} {
	return map[string]interface{}{
		"status":           status,
		"submitted_by":     nil,
		"submitted_at":     nil,
		"reviewer_id":      nil,
		"assigned_by":      nil,
		"assigned_at":      nil,
		"approved_by":      nil,
		"approved_at":      nil,
		"rejected_by":      nil,
		"rejected_at":      nil,
		"rejection_reason": nil,
	}
}

func (d Draft) Columns() map[string]interface{} {
	return emptyColumns(StatusDraft)
}

func (s Submitted) Columns() map[string]interface{} {
	cols := emptyColumns(StatusSubmitted)
	s.fill(cols)
	return cols
}

func (s Submitted) fill(cols map[string]interface{}) {
	cols["submitted_by"] = s.SubmittedBy
	cols["submitted_at"] = s.SubmittedAt
}

func (p PendingReview) Columns() map[string]interface{} {
	cols := emptyColumns(StatusPendingReview)
	p.fill(cols)
	return cols
}

func (p PendingReview) fill(cols map[string]interface{}) {
	p.Submitted.fill(cols)
	cols["reviewer_id"] = p.Reviewer
	cols["assigned_by"] = p.AssignedBy
	cols["assigned_at"] = p.AssignedAt
}

func (a Approved) Columns() map[string]interface{} {
	cols := emptyColumns(StatusApproved)
	a.PendingReview.fill(cols)
	cols["approved_by"] = a.ApprovedBy
	cols["approved_at"] = a.ApprovedAt
	return cols
}

func (r Rejected) Columns() map[string]interface{} {
	cols := emptyColumns(StatusRejected)
	r.PendingReview.fill(cols)
	cols["rejected_by"] = r.RejectedBy
	cols["rejected_at"] = r.RejectedAt
	cols["rejection_reason"] = r.Reason
	return cols
}

// State decodes the row into its typed variant. A row whose columns do not
// fit its status is reported as an error rather than guessed at.
func (s *BidStage) State() (StageState, error) {
	switch s.Status {
	case StatusDraft:
		return Draft{HasContent: s.HasContent()}, nil
	case StatusSubmitted:
		return s.submitted()
	case StatusPendingReview:
		return s.pendingReview()
	case StatusApproved:
		p, err := s.pendingReview()
		if err != nil {
			return nil, err
		}
		if s.ApprovedByID == nil || s.ApprovedAt == nil {
			return nil, fmt.Errorf("stage %s approved without approver", s.Stage)
		}
		return Approved{PendingReview: p, ApprovedBy: *s.ApprovedByID, ApprovedAt: *s.ApprovedAt}, nil
	case StatusRejected:
		p, err := s.pendingReview()
		if err != nil {
			return nil, err
		}
		if s.RejectedByID == nil || s.RejectedAt == nil || s.RejectionReason == nil {
			return nil, fmt.Errorf("stage %s rejected without rejection details", s.Stage)
		}
		return Rejected{PendingReview: p, RejectedBy: *s.RejectedByID, RejectedAt: *s.RejectedAt, Reason: *s.RejectionReason}, nil
	default:
		return nil, fmt.Errorf("unknown stage status %q", s.Status)
	}
}

func (s *BidStage) submitted() (Submitted, error) {
	if s.SubmittedByID == nil || s.SubmittedAt == nil {
		return Submitted{}, fmt.Errorf("stage %s submitted without submitter", s.Stage)
	}
	return Submitted{SubmittedBy: *s.SubmittedByID, SubmittedAt: *s.SubmittedAt}, nil
}

func (s *BidStage) pendingReview() (PendingReview, error) {
	sub, err := s.submitted()
	if err != nil {
		return PendingReview{}, err
	}
	if s.ReviewerID == nil || s.AssignedByID == nil || s.AssignedAt == nil {
		return PendingReview{}, fmt.Errorf("stage %s in review without reviewer", s.Stage)
	}
	return PendingReview{Submitted: sub, Reviewer: *s.ReviewerID, AssignedBy: *s.AssignedByID, AssignedAt: *s.AssignedAt}, nil
}

// Submit moves a draft into submitted. The previous stage must already be
// approved and the draft must carry content or criteria.
func (d Draft) Submit(by uuid.UUID, at time.Time, previousApproved bool) (Submitted, error) {
	if !previousApproved {
		return Submitted{}, domain.ErrStageOutOfOrder
	}
	if !d.HasContent {
		return Submitted{}, domain.NewValidationError("content", "stage needs content or at least one criterion before submission")
	}
	return Submitted{SubmittedBy: by, SubmittedAt: at}, nil
}

func (s Submitted) AssignReviewer(reviewer, by uuid.UUID, at time.Time) PendingReview {
	return PendingReview{Submitted: s, Reviewer: reviewer, AssignedBy: by, AssignedAt: at}
}

func (p PendingReview) Approve(by uuid.UUID, at time.Time) Approved {
	return Approved{PendingReview: p, ApprovedBy: by, ApprovedAt: at}
}

// Reject requires a reason of at least minReason characters after trimming.
func (p PendingReview) Reject(by uuid.UUID, at time.Time, reason string, minReason int) (Rejected, error) {
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) < minReason {
		return Rejected{}, domain.NewValidationError("reason", fmt.Sprintf("must be at least %d characters", minReason))
	}
	return Rejected{PendingReview: p, RejectedBy: by, RejectedAt: at, Reason: reason}, nil
}

// Edit sends a rejected stage back to draft for revision.
func (r Rejected) Edit(hasContent bool) Draft {
	return Draft{HasContent: hasContent}
}

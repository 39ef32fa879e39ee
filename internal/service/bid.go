package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/ai"
	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

// BidService drives bids through their four review stages.
type BidService struct {
	repo          repository.BidRepositoryIface
	tenderRepo    repository.TenderRepositoryIface
	clientRepo    repository.ClientCompanyRepositoryIface
	knowledgeRepo repository.KnowledgeRepositoryIface
	ledger        *MembershipService
	completer     ai.Completer
	auditLog      audit.Logger
	config        *config.Config
	validate      *validator.Validate
	now           func() time.Time
}

func NewBidService(
	repo repository.BidRepositoryIface,
	tenderRepo repository.TenderRepositoryIface,
	clientRepo repository.ClientCompanyRepositoryIface,
	knowledgeRepo repository.KnowledgeRepositoryIface,
	membershipRepo repository.MembershipRepositoryIface,
	completer ai.Completer,
	auditLog audit.Logger,
	cfg *config.Config,
) *BidService {
	return &BidService{
		repo:          repo,
		tenderRepo:    tenderRepo,
		clientRepo:    clientRepo,
		knowledgeRepo: knowledgeRepo,
		ledger:        NewMembershipService(membershipRepo, auditLog),
		completer:     completer,
		auditLog:      auditLog,
		config:        cfg,
		validate:      validation.New(),
		now:           time.Now,
	}
}

func (s *BidService) scoped(ctx context.Context, tc *model.TenantContext, entityType string, id uuid.UUID, err error) error {
	return scopedErr(ctx, s.auditLog, tc, entityType, id, err)
}

type CreateBidInput struct {
	TenderID        uuid.UUID  `json:"tender_id" validate:"required"`
	ClientCompanyID *uuid.UUID `json:"client_company_id"`
	Title           string     `json:"title" validate:"required,min=2,max=300"`
}

// Create opens a bid for a tender of the tenant with all stages in draft.
func (s *BidService) Create(ctx context.Context, tc *model.TenantContext, input CreateBidInput) (*model.Bid, error) {
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, domain.ErrInsufficientRole
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	if _, err := s.tenderRepo.FindByID(ctx, tc.TenantID, input.TenderID); err != nil {
		return nil, s.scoped(ctx, tc, "tender", input.TenderID, err)
	}
	if input.ClientCompanyID != nil {
		client, err := s.clientRepo.FindByID(ctx, tc.TenantID, *input.ClientCompanyID)
		if err != nil {
			return nil, s.scoped(ctx, tc, "client_company", *input.ClientCompanyID, err)
		}
		if client.Status == model.ClientStatusArchived {
			return nil, domain.NewValidationError("client_company_id", "client company is archived")
		}
	}

	bid := model.NewBid(tc.TenantID, input.TenderID, input.ClientCompanyID, input.Title, tc.UserID)
	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Bid created", "bidID", bid.ID, "tenantID", tc.TenantID, "userID", tc.UserID)
	return bid, nil
}

func (s *BidService) Get(ctx context.Context, tc *model.TenantContext, id uuid.UUID) (*model.Bid, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, domain.ErrInsufficientRole
	}
	bid, err := s.repo.FindByID(ctx, tc.TenantID, id)
	if err != nil {
		return nil, s.scoped(ctx, tc, "bid", id, err)
	}
	return bid, nil
}

func (s *BidService) List(ctx context.Context, tc *model.TenantContext, filter repository.BidFilter) ([]*model.Bid, int64, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, tc.TenantID, filter)
}

// Delete removes a bid that is not completed. Requires admin or higher.
func (s *BidService) Delete(ctx context.Context, tc *model.TenantContext, id uuid.UUID) error {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return domain.ErrInsufficientRole
	}
	if err := s.repo.Delete(ctx, tc.TenantID, id); err != nil {
		return s.scoped(ctx, tc, "bid", id, err)
	}
	slog.InfoContext(ctx, "Bid deleted", "bidID", id, "tenantID", tc.TenantID, "userID", tc.UserID)
	return nil
}

type AssignUsersInput struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"max=50,dive,required"`
}

// AssignUsers replaces the bid team. Every user must be an active member of
// the company.
func (s *BidService) AssignUsers(ctx context.Context, tc *model.TenantContext, id uuid.UUID, input AssignUsersInput) (*model.Bid, error) {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	bid, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	for i, userID := range input.UserIDs {
		if err := s.requireActiveMember(ctx, tc, userID, fmt.Sprintf("user_ids[%d]", i)); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SetAssignedUsers(ctx, tc.TenantID, bid.ID, input.UserIDs); err != nil {
		return nil, s.scoped(ctx, tc, "bid", bid.ID, err)
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

func (s *BidService) requireActiveMember(ctx context.Context, tc *model.TenantContext, userID uuid.UUID, field string) error {
	ok, err := s.ledger.HasCompanyRole(ctx, userID, tc.CompanyID, model.CompanyRoleViewer)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidationError(field, "must be an active member of the company")
	}
	return nil
}

// platformAdmin reports whether the caller may override reviewer
// assignments. Operator admins count even when another tenant is active.
func (s *BidService) platformAdmin(ctx context.Context, tc *model.TenantContext) (bool, error) {
	if tc.HasPlatformRole(model.PlatformRoleAdmin) {
		return true, nil
	}
	return s.ledger.HasPlatformRole(ctx, tc.UserID, model.PlatformRoleAdmin)
}

// loadStage returns the bid and its decoded stage state.
func (s *BidService) loadStage(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName) (*model.Bid, *model.BidStage, model.StageState, error) {
	if !name.Valid() {
		return nil, nil, nil, domain.NewValidationError("stage", "unknown stage")
	}
	bid, err := s.Get(ctx, tc, bidID)
	if err != nil {
		return nil, nil, nil, err
	}
	row := bid.Stage(name)
	if row == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	state, err := row.State()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding bid %s stage %s: %w", bid.ID, name, err)
	}
	return bid, row, state, nil
}

// transition writes the new state with a conditional update on the expected
// status and records the outcome.
func (s *BidService) transition(ctx context.Context, tc *model.TenantContext, bid *model.Bid, stage model.StageName, from model.StageStatus, action string, stageCols, bidCols map[string]interface{}) error {
	err := s.repo.TransitionStage(ctx, tc.TenantID, bid.ID, stage, from, stageCols, bidCols)
	result := "ok"
	if errors.Is(err, domain.ErrStaleState) {
		result = "stale"
	} else if err != nil {
		result = "error"
	}
	metrics.StageTransitionsTotal.WithLabelValues(string(stage), action, result).Inc()
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Bid stage transition", "bidID", bid.ID, "stage", stage, "action", action, "tenantID", tc.TenantID, "userID", tc.UserID)
	recordAudit(ctx, s.auditLog.LogStageTransition(ctx, tc.TenantID, model.UserSubject(tc.UserID),
		model.Entity{Type: "bid", ID: bid.ID.String()}, string(stage), action))
	return nil
}

func (s *BidService) deny(ctx context.Context, tc *model.TenantContext, bid *model.Bid, stage model.StageName, action string) error {
	metrics.StageTransitionsTotal.WithLabelValues(string(stage), action, "denied").Inc()
	metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
	recordAudit(ctx, s.auditLog.LogPermissionCheck(ctx, tc.TenantID, model.UserSubject(tc.UserID), "bid.stage."+action,
		model.Entity{Type: "bid", ID: bid.ID.String()}, false, map[string]interface{}{"stage": stage}))
	return domain.ErrInsufficientRole
}

type EditStageInput struct {
	Content     *string            `json:"content" validate:"omitempty,max=200000"`
	Criteria    *model.Criteria    `json:"criteria" validate:"omitempty,max=200,dive"`
	Attachments *model.Attachments `json:"attachments" validate:"omitempty,max=50,dive"`
}

// EditStage updates a draft stage, or sends a rejected stage back to draft
// with the new content.
func (s *BidService) EditStage(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName, input EditStageInput) (*model.Bid, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	bid, row, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, s.deny(ctx, tc, bid, name, "edit")
	}

	cols := map[string]interface{}{}
	if input.Content != nil {
		cols["content"] = *input.Content
	}
	if input.Criteria != nil {
		cols["criteria"] = *input.Criteria
	}
	if input.Attachments != nil {
		cols["attachments"] = *input.Attachments
	}

	switch st := state.(type) {
	case model.Draft:
		if len(cols) == 0 {
			return bid, nil
		}
	case model.Rejected:
		for k, v := range st.Edit(row.HasContent()).Columns() {
			cols[k] = v
		}
	default:
		return nil, fmt.Errorf("%w: cannot edit a %s stage", domain.ErrInvalidTransition, state.Status())
	}

	bidCols := map[string]interface{}{"updated_by": tc.UserID}
	if err := s.transition(ctx, tc, bid, name, state.Status(), "edit", cols, bidCols); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

// Submit hands a draft in for review. The previous stage must be approved.
func (s *BidService) Submit(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName) (*model.Bid, error) {
	bid, _, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, s.deny(ctx, tc, bid, name, "submit")
	}
	draft, ok := state.(model.Draft)
	if !ok {
		return nil, fmt.Errorf("%w: cannot submit a %s stage", domain.ErrInvalidTransition, state.Status())
	}

	submitted, err := draft.Submit(tc.UserID, s.now().UTC(), previousApproved(bid, name))
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, tc, bid, name, model.StatusDraft, "submit", submitted.Columns(), map[string]interface{}{"updated_by": tc.UserID}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

func previousApproved(bid *model.Bid, name model.StageName) bool {
	prev, ok := name.Previous()
	if !ok {
		return true
	}
	row := bid.Stage(prev)
	return row != nil && row.Status == model.StatusApproved
}

type AssignReviewerInput struct {
	ReviewerID uuid.UUID `json:"reviewer_id" validate:"required"`
}

// AssignReviewer moves a submitted stage into review. Requires admin or
// higher; the reviewer must be an active member.
func (s *BidService) AssignReviewer(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName, input AssignReviewerInput) (*model.Bid, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	bid, _, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return nil, s.deny(ctx, tc, bid, name, "assign")
	}
	submitted, ok := state.(model.Submitted)
	if !ok {
		return nil, fmt.Errorf("%w: cannot assign a reviewer to a %s stage", domain.ErrInvalidTransition, state.Status())
	}
	if err := s.requireActiveMember(ctx, tc, input.ReviewerID, "reviewer_id"); err != nil {
		return nil, err
	}

	pending := submitted.AssignReviewer(input.ReviewerID, tc.UserID, s.now().UTC())
	if err := s.transition(ctx, tc, bid, name, model.StatusSubmitted, "assign", pending.Columns(), map[string]interface{}{"updated_by": tc.UserID}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

// Approve is reserved for the assigned reviewer and platform admins. It
// advances the bid to the next stage; approving the final stage completes
// the bid.
func (s *BidService) Approve(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName) (*model.Bid, error) {
	bid, _, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	pending, ok := state.(model.PendingReview)
	if !ok {
		return nil, fmt.Errorf("%w: cannot approve a %s stage", domain.ErrInvalidTransition, state.Status())
	}
	if pending.Reviewer != tc.UserID {
		override, err := s.platformAdmin(ctx, tc)
		if err != nil {
			return nil, err
		}
		if !override {
			return nil, s.deny(ctx, tc, bid, name, "approve")
		}
	}

	now := s.now().UTC()
	approved := pending.Approve(tc.UserID, now)
	bidCols := map[string]interface{}{"updated_by": tc.UserID}
	next, hasNext := name.Next()
	if hasNext {
		bidCols["current_stage"] = next
	} else {
		bidCols["completed_at"] = now
	}

	if err := s.transition(ctx, tc, bid, name, model.StatusPendingReview, "approve", approved.Columns(), bidCols); err != nil {
		return nil, err
	}
	if !hasNext {
		metrics.BidsCompletedTotal.Inc()
		slog.InfoContext(ctx, "Bid completed", "bidID", bid.ID, "tenantID", tc.TenantID)
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

type RejectInput struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// Reject sends a stage in review back with a reason. The assigned reviewer,
// company admins and platform admins may reject.
func (s *BidService) Reject(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName, input RejectInput) (*model.Bid, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	bid, _, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	pending, ok := state.(model.PendingReview)
	if !ok {
		return nil, fmt.Errorf("%w: cannot reject a %s stage", domain.ErrInvalidTransition, state.Status())
	}
	if pending.Reviewer != tc.UserID && !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		override, err := s.platformAdmin(ctx, tc)
		if err != nil {
			return nil, err
		}
		if !override {
			return nil, s.deny(ctx, tc, bid, name, "reject")
		}
	}

	rejected, err := pending.Reject(tc.UserID, s.now().UTC(), input.Reason, s.config.MinRejectionReason)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, tc, bid, name, model.StatusPendingReview, "reject", rejected.Columns(), map[string]interface{}{"updated_by": tc.UserID}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

const (
	draftSystemPrompt = "Je bent een ervaren tenderschrijver voor Nederlandse aanbestedingen. " +
		"Schrijf zakelijk en concreet in het Nederlands, sluit aan op de gunningscriteria " +
		"en verzin geen feiten die niet in de context staan."
	draftKnowledgeLimit = 5
)

// DraftWithAI fills a draft stage with generated content built from the
// tender, the client company and the tenant's knowledge base.
func (s *BidService) DraftWithAI(ctx context.Context, tc *model.TenantContext, bidID uuid.UUID, name model.StageName) (*model.Bid, error) {
	bid, row, state, err := s.loadStage(ctx, tc, bidID, name)
	if err != nil {
		return nil, err
	}
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, s.deny(ctx, tc, bid, name, "draft")
	}
	if _, ok := state.(model.Draft); !ok {
		return nil, fmt.Errorf("%w: cannot draft a %s stage", domain.ErrInvalidTransition, state.Status())
	}

	prompt, citations, err := s.draftPrompt(ctx, tc, bid, row)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
	defer cancel()
	start := s.now()
	content, err := s.completer.Complete(callCtx, draftSystemPrompt, prompt)
	metrics.ExternalCallDuration.WithLabelValues("ai").Observe(time.Since(start).Seconds())
	metrics.ExternalCallsTotal.WithLabelValues("ai", metrics.Result(err)).Inc()
	if err != nil {
		slog.ErrorContext(ctx, "AI drafting failed", "error", err, "bidID", bid.ID, "stage", name, "tenantID", tc.TenantID)
		var ext *domain.ExternalServiceError
		if errors.As(err, &ext) {
			return nil, err
		}
		return nil, &domain.ExternalServiceError{Service: "ai", Err: err}
	}

	cols := map[string]interface{}{"content": content, "citations": citations}
	if err := s.transition(ctx, tc, bid, name, model.StatusDraft, "draft", cols, map[string]interface{}{"updated_by": tc.UserID}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, tc.TenantID, bid.ID)
}

func (s *BidService) draftPrompt(ctx context.Context, tc *model.TenantContext, bid *model.Bid, row *model.BidStage) (string, model.Citations, error) {
	tender, err := s.tenderRepo.FindByID(ctx, tc.TenantID, bid.TenderID)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	citations := model.Citations{{Source: "tender:" + tender.ExternalRef, Excerpt: tender.Title}}
	fmt.Fprintf(&b, "Aanbesteding: %s\nAanbestedende dienst: %s\n", tender.Title, tender.ContractingAuthority)
	if len(tender.CPVCodes) > 0 {
		fmt.Fprintf(&b, "CPV-codes: %s\n", strings.Join(tender.CPVCodes, ", "))
	}
	if tender.Description != "" {
		fmt.Fprintf(&b, "Omschrijving:\n%s\n", tender.Description)
	}

	if bid.ClientCompanyID != nil {
		client, err := s.clientRepo.FindByID(ctx, tc.TenantID, *bid.ClientCompanyID)
		if err != nil {
			return "", nil, err
		}
		fmt.Fprintf(&b, "\nInschrijver: %s (%s, %s)\n", client.Name, client.Sector, client.City)
		citations = append(citations, model.Citation{Source: "client:" + client.ID.String(), Excerpt: client.Name})
	}

	docs, _, err := s.knowledgeRepo.List(ctx, tc.TenantID, repository.Page{Limit: draftKnowledgeLimit})
	if err != nil {
		return "", nil, err
	}
	for _, doc := range docs {
		if doc.Summary == "" {
			continue
		}
		fmt.Fprintf(&b, "\nKennisdocument %q:\n%s\n", doc.Title, doc.Summary)
		citations = append(citations, model.Citation{Source: "knowledge:" + doc.ID.String(), Excerpt: doc.Title})
	}

	if len(row.Criteria) > 0 {
		b.WriteString("\nGunningscriteria:\n")
		for _, c := range row.Criteria {
			fmt.Fprintf(&b, "- %s %s (weging %.0f)\n", c.Code, c.Title, c.Weight)
		}
	}
	fmt.Fprintf(&b, "\nSchrijf de inhoud voor fase %q van de inschrijving %q.", row.Stage, bid.Title)
	if strings.TrimSpace(row.Content) != "" {
		fmt.Fprintf(&b, " Bouw voort op het huidige concept:\n%s", row.Content)
	}
	return b.String(), citations, nil
}

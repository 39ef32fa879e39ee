package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/mocks"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// memoryBids keeps bids in memory and applies stage updates with the same
// conditional semantics as the database repository.
type memoryBids struct {
	mu   sync.Mutex
	bids map[uuid.UUID]*model.Bid
}

func newMemoryBids() *memoryBids {
	return &memoryBids{bids: map[uuid.UUID]*model.Bid{}}
}

func cloneBid(b *model.Bid) *model.Bid {
	c := *b
	c.Stages = append([]model.BidStage(nil), b.Stages...)
	c.AssignedUserIDs = append(pq.StringArray(nil), b.AssignedUserIDs...)
	return &c
}

func (m *memoryBids) Create(_ context.Context, bid *model.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bids[bid.ID] = cloneBid(bid)
	return nil
}

func (m *memoryBids) find(tenantID string, id uuid.UUID) (*model.Bid, error) {
	bid, ok := m.bids[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if bid.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return bid, nil
}

func (m *memoryBids) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, err := m.find(tenantID, id)
	if err != nil {
		return nil, err
	}
	return cloneBid(bid), nil
}

func (m *memoryBids) List(_ context.Context, tenantID string, _ repository.BidFilter) ([]*model.Bid, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Bid
	for _, bid := range m.bids {
		if bid.TenantID == tenantID {
			out = append(out, cloneBid(bid))
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryBids) TransitionStage(_ context.Context, tenantID string, bidID uuid.UUID, stage model.StageName, from model.StageStatus, stageCols, bidCols map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, err := m.find(tenantID, bidID)
	if err != nil {
		return err
	}
	row := bid.Stage(stage)
	if row == nil || row.Status != from {
		return domain.ErrStaleState
	}
	for k, v := range stageCols {
		applyStageColumn(row, k, v)
	}
	for k, v := range bidCols {
		switch k {
		case "current_stage":
			bid.CurrentStage = v.(model.StageName)
		case "completed_at":
			at := v.(time.Time)
			bid.CompletedAt = &at
		case "updated_by":
			by := v.(uuid.UUID)
			bid.UpdatedByID = &by
		}
	}
	return nil
}

func uuidCol(v interface{}) *uuid.UUID {
	if v == nil {
		return nil
	}
	id := v.(uuid.UUID)
	return &id
}

func timeCol(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	at := v.(time.Time)
	return &at
}

func applyStageColumn(row *model.BidStage, k string, v interface{}) {
	switch k {
	case "status":
		row.Status = v.(model.StageStatus)
	case "content":
		row.Content = v.(string)
	case "criteria":
		row.Criteria = v.(model.Criteria)
	case "attachments":
		row.Attachments = v.(model.Attachments)
	case "citations":
		row.Citations = v.(model.Citations)
	case "submitted_by":
		row.SubmittedByID = uuidCol(v)
	case "submitted_at":
		row.SubmittedAt = timeCol(v)
	case "reviewer_id":
		row.ReviewerID = uuidCol(v)
	case "assigned_by":
		row.AssignedByID = uuidCol(v)
	case "assigned_at":
		row.AssignedAt = timeCol(v)
	case "approved_by":
		row.ApprovedByID = uuidCol(v)
	case "approved_at":
		row.ApprovedAt = timeCol(v)
	case "rejected_by":
		row.RejectedByID = uuidCol(v)
	case "rejected_at":
		row.RejectedAt = timeCol(v)
	case "rejection_reason":
		if v == nil {
			row.RejectionReason = nil
		} else {
			reason := v.(string)
			row.RejectionReason = &reason
		}
	}
}

func (m *memoryBids) SetAssignedUsers(_ context.Context, tenantID string, bidID uuid.UUID, userIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, err := m.find(tenantID, bidID)
	if err != nil {
		return err
	}
	bid.AssignedUserIDs = pq.StringArray{}
	for _, id := range userIDs {
		bid.AssignedUserIDs = append(bid.AssignedUserIDs, id.String())
	}
	return nil
}

func (m *memoryBids) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, err := m.find(tenantID, id)
	if err != nil {
		return err
	}
	if bid.Completed() {
		return domain.ErrBidLocked
	}
	delete(m.bids, id)
	return nil
}

func (m *memoryBids) CountOpenByClient(context.Context, string, uuid.UUID) (int64, error) {
	return 0, nil
}

type bidFixture struct {
	repo        *memoryBids
	tenders     *mocks.MockTenderRepositoryIface
	clients     *mocks.MockClientCompanyRepositoryIface
	knowledge   *mocks.MockKnowledgeRepositoryIface
	memberships *mocks.MockMembershipRepositoryIface
	completer   *mocks.MockCompleter
	svc         *service.BidService

	author   *model.TenantContext
	reviewer *model.TenantContext
	tender   *model.Tender
}

func newBidFixture(ctrl *gomock.Controller) *bidFixture {
	f := &bidFixture{
		repo:        newMemoryBids(),
		tenders:     mocks.NewMockTenderRepositoryIface(ctrl),
		clients:     mocks.NewMockClientCompanyRepositoryIface(ctrl),
		knowledge:   mocks.NewMockKnowledgeRepositoryIface(ctrl),
		memberships: mocks.NewMockMembershipRepositoryIface(ctrl),
		completer:   mocks.NewMockCompleter(ctrl),
	}
	f.svc = service.NewBidService(f.repo, f.tenders, f.clients, f.knowledge, f.memberships, f.completer, audit.NoOpLogger{}, testConfig())

	f.author = tenantFor(model.CompanyRoleAdmin)
	f.reviewer = &model.TenantContext{
		UserID:      uuid.New(),
		TenantID:    f.author.TenantID,
		CompanyID:   f.author.CompanyID,
		CompanyRole: model.CompanyRoleMember,
	}
	f.tender = &model.Tender{
		ID:                   uuid.New(),
		TenantID:             f.author.TenantID,
		ExternalRef:          "TN-2026-0142",
		Title:                "Onderhoud kunstwerken provincie Utrecht",
		ContractingAuthority: "Provincie Utrecht",
	}
	return f
}

func (f *bidFixture) createBid(t *testing.T) *model.Bid {
	t.Helper()
	f.tenders.EXPECT().FindByID(gomock.Any(), f.author.TenantID, f.tender.ID).Return(f.tender, nil)
	bid, err := f.svc.Create(context.Background(), f.author, service.CreateBidInput{TenderID: f.tender.ID, Title: "Inschrijving onderhoud"})
	require.NoError(t, err)
	return bid
}

func (f *bidFixture) expectReviewerIsMember() {
	f.memberships.EXPECT().FindByUserAndCompany(gomock.Any(), f.reviewer.UserID, f.author.CompanyID).
		Return(&model.Membership{ID: uuid.New(), UserID: f.reviewer.UserID, CompanyID: f.author.CompanyID, CompanyRole: model.CompanyRoleMember, IsActive: true}, nil)
}

// putInReview edits, submits and assigns a reviewer for one stage.
func (f *bidFixture) putInReview(t *testing.T, bidID uuid.UUID, stage model.StageName) {
	t.Helper()
	ctx := context.Background()
	content := "Plan van aanpak voor " + string(stage)

	_, err := f.svc.EditStage(ctx, f.author, bidID, stage, service.EditStageInput{Content: &content})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.author, bidID, stage)
	require.NoError(t, err)

	f.expectReviewerIsMember()
	_, err = f.svc.AssignReviewer(ctx, f.author, bidID, stage, service.AssignReviewerInput{ReviewerID: f.reviewer.UserID})
	require.NoError(t, err)
}

func TestBidHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)
	require.Len(t, bid.Stages, 4)

	for i, stage := range model.StageOrder {
		f.putInReview(t, bid.ID, stage)

		got, err := f.svc.Approve(ctx, f.reviewer, bid.ID, stage)
		require.NoError(t, err)

		row := got.Stage(stage)
		assert.Equal(t, model.StatusApproved, row.Status)
		require.NotNil(t, row.ApprovedByID)
		assert.Equal(t, f.reviewer.UserID, *row.ApprovedByID)

		if i < len(model.StageOrder)-1 {
			assert.Equal(t, model.StageOrder[i+1], got.CurrentStage)
			assert.False(t, got.Completed())
		} else {
			assert.True(t, got.Completed())
		}
	}
}

func TestBidApproveRequiresReviewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)
	f.putInReview(t, bid.ID, model.StageStoryline)

	t.Run("company admin who is not the reviewer", func(t *testing.T) {
		f.memberships.EXPECT().FindOperatorMembership(gomock.Any(), f.author.UserID).Return(nil, domain.ErrNotFound)
		_, err := f.svc.Approve(ctx, f.author, bid.ID, model.StageStoryline)
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("platform role held outside the operator company", func(t *testing.T) {
		admin := model.PlatformRoleAdmin
		tc := *f.author
		tc.UserID = uuid.New()
		tc.PlatformRole = &admin
		f.memberships.EXPECT().FindOperatorMembership(gomock.Any(), tc.UserID).Return(nil, domain.ErrNotFound)
		_, err := f.svc.Approve(ctx, &tc, bid.ID, model.StageStoryline)
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("operator support staff", func(t *testing.T) {
		support := model.PlatformRoleSupport
		tc := *f.author
		tc.UserID = uuid.New()
		f.memberships.EXPECT().FindOperatorMembership(gomock.Any(), tc.UserID).
			Return(&model.Membership{UserID: tc.UserID, PlatformRole: &support, IsActive: true}, nil)
		_, err := f.svc.Approve(ctx, &tc, bid.ID, model.StageStoryline)
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	got, err := f.svc.Get(ctx, f.author, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, got.Stage(model.StageStoryline).Status)

	t.Run("operator admin who is a member of the tenant", func(t *testing.T) {
		admin := model.PlatformRoleAdmin
		tc := *f.author
		tc.UserID = uuid.New()
		f.memberships.EXPECT().FindOperatorMembership(gomock.Any(), tc.UserID).
			Return(&model.Membership{UserID: tc.UserID, PlatformRole: &admin, IsActive: true}, nil)
		got, err := f.svc.Approve(ctx, &tc, bid.ID, model.StageStoryline)
		require.NoError(t, err)
		row := got.Stage(model.StageStoryline)
		assert.Equal(t, model.StatusApproved, row.Status)
		assert.Equal(t, tc.UserID, *row.ApprovedByID)
	})
}

func TestBidRejectAndRevise(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)
	f.putInReview(t, bid.ID, model.StageStoryline)

	t.Run("short reason is refused", func(t *testing.T) {
		_, err := f.svc.Reject(ctx, f.reviewer, bid.ID, model.StageStoryline, service.RejectInput{Reason: "  nee  "})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "reason", verr.Fields[0].Field)
	})

	got, err := f.svc.Reject(ctx, f.reviewer, bid.ID, model.StageStoryline, service.RejectInput{Reason: "Onderbouwing van de planning ontbreekt"})
	require.NoError(t, err)
	row := got.Stage(model.StageStoryline)
	assert.Equal(t, model.StatusRejected, row.Status)
	require.NotNil(t, row.RejectionReason)
	assert.Equal(t, "Onderbouwing van de planning ontbreekt", *row.RejectionReason)

	revised := "Planning met mijlpalen per kwartaal"
	got, err = f.svc.EditStage(ctx, f.author, bid.ID, model.StageStoryline, service.EditStageInput{Content: &revised})
	require.NoError(t, err)
	row = got.Stage(model.StageStoryline)
	assert.Equal(t, model.StatusDraft, row.Status)
	assert.Equal(t, revised, row.Content)
	assert.Nil(t, row.RejectionReason)
	assert.Nil(t, row.ReviewerID)
}

func TestBidStageOrdering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)
	content := "Vooruitlopend concept"

	_, err := f.svc.EditStage(ctx, f.author, bid.ID, model.StageVersion65, service.EditStageInput{Content: &content})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.author, bid.ID, model.StageVersion65)
	assert.ErrorIs(t, err, domain.ErrStageOutOfOrder)

	t.Run("empty draft cannot be submitted", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, f.author, bid.ID, model.StageStoryline)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("approving a draft is an invalid transition", func(t *testing.T) {
		_, err := f.svc.Approve(ctx, f.author, bid.ID, model.StageStoryline)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown stage", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, f.author, bid.ID, model.StageName("version_80"))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("viewers cannot edit", func(t *testing.T) {
		viewer := *f.author
		viewer.CompanyRole = model.CompanyRoleViewer
		_, err := f.svc.EditStage(ctx, &viewer, bid.ID, model.StageStoryline, service.EditStageInput{Content: &content})
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})
}

func TestBidStaleTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBidRepositoryIface(ctrl)
	tc := tenantFor(model.CompanyRoleMember)
	bid := model.NewBid(tc.TenantID, uuid.New(), nil, "Inschrijving", tc.UserID)
	bid.Stages[0].Content = "Concept"

	repo.EXPECT().FindByID(gomock.Any(), tc.TenantID, bid.ID).Return(bid, nil)
	repo.EXPECT().TransitionStage(gomock.Any(), tc.TenantID, bid.ID, model.StageStoryline, model.StatusDraft, gomock.Any(), gomock.Any()).
		Return(domain.ErrStaleState)

	svc := service.NewBidService(repo, nil, nil, nil, nil, nil, audit.NoOpLogger{}, testConfig())
	_, err := svc.Submit(context.Background(), tc, bid.ID, model.StageStoryline)
	assert.ErrorIs(t, err, domain.ErrStaleState)
}

func TestBidCrossTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)

	outsider := tenantFor(model.CompanyRoleOwner)
	outsider.TenantID = "other-bv-q9w8e7"
	_, err := f.svc.Get(context.Background(), outsider, bid.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBidDraftWithAI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)
	bid := f.createBid(t)

	doc := &model.KnowledgeDocument{ID: uuid.New(), TenantID: f.author.TenantID, Title: "Referentieproject N201", Summary: "Groot onderhoud brug 2024"}
	f.tenders.EXPECT().FindByID(gomock.Any(), f.author.TenantID, f.tender.ID).Return(f.tender, nil).Times(2)
	f.knowledge.EXPECT().List(gomock.Any(), f.author.TenantID, gomock.Any()).Return([]*model.KnowledgeDocument{doc}, int64(1), nil).Times(2)

	t.Run("generated content and citations are stored", func(t *testing.T) {
		f.completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, prompt string) (string, error) {
				assert.Contains(t, prompt, "Provincie Utrecht")
				assert.Contains(t, prompt, "Referentieproject N201")
				return "Onze aanpak voor het onderhoud", nil
			})

		got, err := f.svc.DraftWithAI(ctx, f.author, bid.ID, model.StageStoryline)
		require.NoError(t, err)

		row := got.Stage(model.StageStoryline)
		assert.Equal(t, "Onze aanpak voor het onderhoud", row.Content)
		assert.Equal(t, model.StatusDraft, row.Status)
		require.Len(t, row.Citations, 2)
		assert.Equal(t, "tender:TN-2026-0142", row.Citations[0].Source)
	})

	t.Run("provider failure is a retryable external error", func(t *testing.T) {
		f.completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("upstream 503"))

		_, err := f.svc.DraftWithAI(ctx, f.author, bid.ID, model.StageStoryline)
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})
}

func TestBidDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	f := newBidFixture(ctrl)

	t.Run("open bid", func(t *testing.T) {
		bid := f.createBid(t)
		require.NoError(t, f.svc.Delete(ctx, f.author, bid.ID))

		_, err := f.svc.Get(ctx, f.author, bid.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("members may not delete", func(t *testing.T) {
		bid := f.createBid(t)
		err := f.svc.Delete(ctx, f.reviewer, bid.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("another tenant's bid", func(t *testing.T) {
		bid := f.createBid(t)
		outsider := tenantFor(model.CompanyRoleOwner)
		outsider.TenantID = "other-bv-q9w8e7"

		err := f.svc.Delete(ctx, outsider, bid.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.svc.Get(ctx, f.author, bid.ID)
		assert.NoError(t, err)
	})

	t.Run("completed bid is locked", func(t *testing.T) {
		bid := f.createBid(t)
		for _, stage := range model.StageOrder {
			f.putInReview(t, bid.ID, stage)
			_, err := f.svc.Approve(ctx, f.reviewer, bid.ID, stage)
			require.NoError(t, err)
		}

		err := f.svc.Delete(ctx, f.author, bid.ID)
		assert.ErrorIs(t, err, domain.ErrBidLocked)

		got, err := f.svc.Get(ctx, f.author, bid.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed())
	})
}

func TestBidAssignUsersCrossTenantWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBidRepositoryIface(ctrl)
	memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tc := tenantFor(model.CompanyRoleAdmin)
	bid := model.NewBid(tc.TenantID, uuid.New(), nil, "Inschrijving", tc.UserID)
	teammate := uuid.New()

	repo.EXPECT().FindByID(gomock.Any(), tc.TenantID, bid.ID).Return(bid, nil)
	memberships.EXPECT().FindByUserAndCompany(gomock.Any(), teammate, tc.CompanyID).
		Return(&model.Membership{UserID: teammate, CompanyID: tc.CompanyID, CompanyRole: model.CompanyRoleMember, IsActive: true}, nil)
	repo.EXPECT().SetAssignedUsers(gomock.Any(), tc.TenantID, bid.ID, []uuid.UUID{teammate}).Return(domain.ErrTenantMismatch)
	expectMismatchAudit(logger, tc, "bid", bid.ID)

	svc := service.NewBidService(repo, nil, nil, nil, memberships, nil, logger, testConfig())
	_, err := svc.AssignUsers(context.Background(), tc, bid.ID, service.AssignUsersInput{UserIDs: []uuid.UUID{teammate}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBidAssignUsersRequiresActiveMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBidRepositoryIface(ctrl)
	memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
	tc := tenantFor(model.CompanyRoleAdmin)
	bid := model.NewBid(tc.TenantID, uuid.New(), nil, "Inschrijving", tc.UserID)
	former := uuid.New()

	repo.EXPECT().FindByID(gomock.Any(), tc.TenantID, bid.ID).Return(bid, nil)
	memberships.EXPECT().FindByUserAndCompany(gomock.Any(), former, tc.CompanyID).
		Return(&model.Membership{UserID: former, CompanyID: tc.CompanyID, CompanyRole: model.CompanyRoleMember, IsActive: false}, nil)

	svc := service.NewBidService(repo, nil, nil, nil, memberships, nil, audit.NoOpLogger{}, testConfig())
	_, err := svc.AssignUsers(context.Background(), tc, bid.ID, service.AssignUsersInput{UserIDs: []uuid.UUID{former}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user_ids[0]", verr.Fields[0].Field)
}

package service_test

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/blake2b"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/email"
	"github.com/tenderdesk/tenderdesk/internal/email/mailer"
	"github.com/tenderdesk/tenderdesk/internal/mocks"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/ratelimit"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		RequireVerifiedEmail: true,
		InviteTTL:            7 * 24 * time.Hour,
		MinRejectionReason:   10,
		UpstreamTimeout:      time.Second,
		BaseURL:              "https://app.tenderdesk.test",
	}
}

type inviteFixture struct {
	invites     *mocks.MockInviteRepositoryIface
	companies   *mocks.MockCompanyRepositoryIface
	users       *mocks.MockUserRepositoryIface
	memberships *mocks.MockMembershipRepositoryIface
	sender      *mocks.MockSender
	svc         *service.InviteService
}

func newInviteFixture(ctrl *gomock.Controller, limiter *ratelimit.Keyed) *inviteFixture {
	f := &inviteFixture{
		invites:     mocks.NewMockInviteRepositoryIface(ctrl),
		companies:   mocks.NewMockCompanyRepositoryIface(ctrl),
		users:       mocks.NewMockUserRepositoryIface(ctrl),
		memberships: mocks.NewMockMembershipRepositoryIface(ctrl),
		sender:      mocks.NewMockSender(ctrl),
	}
	if limiter == nil {
		limiter = ratelimit.NewKeyed(ratelimit.PerHour(100), 100)
	}
	f.svc = service.NewInviteService(f.invites, f.companies, f.users, f.memberships, f.sender, limiter, audit.NoOpLogger{}, testConfig())
	return f
}

func hashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TestCreateInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("stores only the token hash and mails the link", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		tc := tenantFor(model.CompanyRoleAdmin)
		company := &model.Company{ID: tc.CompanyID, TenantID: tc.TenantID, Name: "Acme B.V."}
		inviter := &model.User{ID: tc.UserID, DisplayName: "Anne Admin"}

		var stored *model.MembershipInvite
		var sent email.EmailData
		gomock.InOrder(
			f.companies.EXPECT().FindByID(gomock.Any(), tc.CompanyID).Return(company, nil),
			f.users.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").Return(nil, domain.ErrNotFound),
			f.invites.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv *model.MembershipInvite) error {
				stored = inv
				return nil
			}),
			f.sender.EXPECT().SendEmail(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, data email.EmailData) error {
				sent = data
				return nil
			}),
		)

		invite, err := f.svc.CreateInvite(ctx, tc, inviter, service.CreateInviteInput{Email: "  Bob@Example.com ", Role: model.CompanyRoleMember})
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.Equal(t, "bob@example.com", invite.Email)
		assert.Equal(t, model.CompanyRoleMember, invite.InvitedRole)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)

		assert.Equal(t, []string{"bob@example.com"}, sent.To)
		assert.Equal(t, mailer.TemplateMembershipInvite, sent.TemplateName)
		data, ok := sent.TemplateData.(mailer.InviteTemplateData)
		require.True(t, ok)
		assert.Equal(t, "Anne Admin", data.InviterName)

		token := data.AcceptLink[strings.LastIndex(data.AcceptLink, "/")+1:]
		assert.Len(t, token, 43)
		assert.Equal(t, hashToken(token), stored.TokenHash)
		assert.NotContains(t, stored.TokenHash, token)
	})

	t.Run("inviter must outrank the invited role", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		tc := tenantFor(model.CompanyRoleAdmin)

		_, err := f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, service.CreateInviteInput{Email: "bob@example.com", Role: model.CompanyRoleAdmin})
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("members cannot invite", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		tc := tenantFor(model.CompanyRoleMember)

		_, err := f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, service.CreateInviteInput{Email: "bob@example.com", Role: model.CompanyRoleViewer})
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("rate limited per inviter", func(t *testing.T) {
		f := newInviteFixture(ctrl, ratelimit.NewKeyed(ratelimit.PerHour(1), 1))
		tc := tenantFor(model.CompanyRoleOwner)
		company := &model.Company{ID: tc.CompanyID, TenantID: tc.TenantID, Name: "Acme B.V."}

		f.companies.EXPECT().FindByID(gomock.Any(), tc.CompanyID).Return(company, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)
		f.invites.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.sender.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil)

		input := service.CreateInviteInput{Email: "bob@example.com", Role: model.CompanyRoleMember}
		_, err := f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, input)
		require.NoError(t, err)

		_, err = f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, input)
		var rl *domain.RateLimitError
		require.ErrorAs(t, err, &rl)
		assert.Greater(t, rl.RetryAfter, time.Duration(0))
	})

	t.Run("mail failure is an external service error", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		tc := tenantFor(model.CompanyRoleOwner)
		company := &model.Company{ID: tc.CompanyID, TenantID: tc.TenantID, Name: "Acme B.V."}

		f.companies.EXPECT().FindByID(gomock.Any(), tc.CompanyID).Return(company, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)
		f.invites.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.sender.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(errors.New("smtp: 421"))

		_, err := f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, service.CreateInviteInput{Email: "bob@example.com", Role: model.CompanyRoleMember})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("address outside the allowed domains is refused", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		tc := tenantFor(model.CompanyRoleOwner)
		company := &model.Company{
			ID:       tc.CompanyID,
			TenantID: tc.TenantID,
			Settings: model.CompanySettings{AllowedEmailDomains: []string{"acme.nl"}},
		}
		f.companies.EXPECT().FindByID(gomock.Any(), tc.CompanyID).Return(company, nil)

		_, err := f.svc.CreateInvite(ctx, tc, &model.User{ID: tc.UserID}, service.CreateInviteInput{Email: "bob@gmail.com", Role: model.CompanyRoleMember})
		assert.ErrorIs(t, err, domain.ErrDomainNotAllowed)
	})
}

func TestAcceptInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	token := "c29tZS1yYW5kb20tdG9rZW4tdGhhdC1pcy00My1jaGFycy1sb25n"
	newInvite := func(settings model.CompanySettings) *model.MembershipInvite {
		companyID := uuid.New()
		return &model.MembershipInvite{
			ID:          uuid.New(),
			Email:       "bob@acme.nl",
			CompanyID:   companyID,
			TenantID:    "acme-bv-q1w2e3",
			InvitedRole: model.CompanyRoleMember,
			TokenHash:   hashToken(token),
			ExpiresAt:   time.Now().Add(time.Hour),
			Company:     &model.Company{ID: companyID, Settings: settings},
		}
	}

	t.Run("creates the membership", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		invite := newInvite(model.CompanySettings{})
		user := &model.User{ID: uuid.New(), Email: "Bob@Acme.nl", EmailVerified: true}
		membership := &model.Membership{ID: uuid.New(), UserID: user.ID, CompanyID: invite.CompanyID, CompanyRole: model.CompanyRoleMember, IsActive: true}

		f.invites.EXPECT().FindPendingByTokenHash(gomock.Any(), hashToken(token), gomock.Any()).Return(invite, nil)
		f.invites.EXPECT().Accept(gomock.Any(), invite.TokenHash, user.ID, gomock.Any()).Return(membership, nil)

		got, err := f.svc.Accept(ctx, user, token)
		require.NoError(t, err)
		assert.Equal(t, membership.ID, got.ID)
	})

	t.Run("different email is refused before consuming the invite", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		invite := newInvite(model.CompanySettings{})
		user := &model.User{ID: uuid.New(), Email: "carol@acme.nl", EmailVerified: true}

		f.invites.EXPECT().FindPendingByTokenHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(invite, nil)

		_, err := f.svc.Accept(ctx, user, token)
		assert.ErrorIs(t, err, domain.ErrEmailMismatch)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("expired or consumed invite reads as not found", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		user := &model.User{ID: uuid.New(), Email: "bob@acme.nl", EmailVerified: true}

		f.invites.EXPECT().FindPendingByTokenHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrInviteNotFound)

		_, err := f.svc.Accept(ctx, user, token)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("domain outside the whitelist is refused", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		invite := newInvite(model.CompanySettings{AllowedEmailDomains: []string{"acme.com"}})
		user := &model.User{ID: uuid.New(), Email: "bob@acme.nl", EmailVerified: true}

		f.invites.EXPECT().FindPendingByTokenHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(invite, nil)

		_, err := f.svc.Accept(ctx, user, token)
		assert.ErrorIs(t, err, domain.ErrDomainNotAllowed)
	})

	t.Run("unverified email is refused first", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		user := &model.User{ID: uuid.New(), Email: "bob@acme.nl"}

		_, err := f.svc.Accept(ctx, user, token)
		assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	})

	t.Run("losing a concurrent accept reads as not found", func(t *testing.T) {
		f := newInviteFixture(ctrl, nil)
		invite := newInvite(model.CompanySettings{})
		user := &model.User{ID: uuid.New(), Email: "bob@acme.nl", EmailVerified: true}

		f.invites.EXPECT().FindPendingByTokenHash(gomock.Any(), gomock.Any(), gomock.Any()).Return(invite, nil)
		f.invites.EXPECT().Accept(gomock.Any(), gomock.Any(), user.ID, gomock.Any()).Return(nil, domain.ErrInviteNotFound)

		_, err := f.svc.Accept(ctx, user, token)
		assert.ErrorIs(t, err, domain.ErrInviteNotFound)
	})
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/email"
	"github.com/tenderdesk/tenderdesk/internal/email/mailer"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/ratelimit"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

const inviteTokenBytes = 32

type InviteService struct {
	repo           repository.InviteRepositoryIface
	companyRepo    repository.CompanyRepositoryIface
	userRepo       repository.UserRepositoryIface
	membershipRepo repository.MembershipRepositoryIface
	sender         email.Sender
	limiter        *ratelimit.Keyed
	auditLog       audit.Logger
	config         *config.Config
	validate       *validator.Validate
	now            func() time.Time
}

func NewInviteService(
	repo repository.InviteRepositoryIface,
	companyRepo repository.CompanyRepositoryIface,
	userRepo repository.UserRepositoryIface,
	membershipRepo repository.MembershipRepositoryIface,
	sender email.Sender,
	limiter *ratelimit.Keyed,
	auditLog audit.Logger,
	cfg *config.Config,
) *InviteService {
	return &InviteService{
		repo:           repo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		sender:         sender,
		limiter:        limiter,
		auditLog:       auditLog,
		config:         cfg,
		validate:       validation.New(),
		now:            time.Now,
	}
}

// generateInviteToken returns a URL-safe random token and the hash stored
// for it.
func generateInviteToken() (token, hash string, err error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating invite token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, hashInviteToken(token), nil
}

func hashInviteToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type CreateInviteInput struct {
	Email string            `json:"email" validate:"required,email,max=320"`
	Role  model.CompanyRole `json:"role" validate:"required,oneof=viewer member admin owner"`
}

// CreateInvite issues a single-use invite and mails the accept link. The
// inviter must be admin or higher and outrank the invited role.
func (s *InviteService) CreateInvite(ctx context.Context, tc *model.TenantContext, inviter *model.User, input CreateInviteInput) (*model.MembershipInvite, error) {
	input.Email = model.NormalizeEmail(input.Email)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) && !tc.HasPlatformRole(model.PlatformRoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if actorRank(tc) <= input.Role.Rank() {
		return nil, domain.ErrInsufficientRole
	}
	if err := s.limiter.Allow(tc.UserID.String()); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByID(ctx, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.Settings.RestrictsDomains() && !company.Settings.AllowsDomain(model.EmailDomain(input.Email)) {
		return nil, domain.ErrDomainNotAllowed
	}
	if err := s.ensureNotMember(ctx, company.ID, input.Email); err != nil {
		return nil, err
	}

	token, hash, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	invite := &model.MembershipInvite{
		ID:          uuid.New(),
		Email:       input.Email,
		CompanyID:   company.ID,
		TenantID:    company.TenantID,
		InvitedRole: input.Role,
		InvitedByID: tc.UserID,
		TokenHash:   hash,
		ExpiresAt:   now.Add(s.config.InviteTTL),
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, invite); err != nil {
		return nil, err
	}

	mailCtx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
	defer cancel()
	err = mailer.SendInviteEmail(mailCtx, s.sender, invite.Email, mailer.InviteTemplateData{
		CompanyName: company.Name,
		InviterName: inviter.DisplayName,
		Role:        string(invite.InvitedRole),
		AcceptLink:  s.acceptLink(token),
		ExpiresAt:   invite.ExpiresAt,
	})
	metrics.ExternalCallsTotal.WithLabelValues("mail", metrics.Result(err)).Inc()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to send invite email", "error", err, "inviteID", invite.ID, "tenantID", tc.TenantID)
		return nil, &domain.ExternalServiceError{Service: "mail", Err: err}
	}

	metrics.InvitesTotal.WithLabelValues("created").Inc()
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionInviteCreate, tc.TenantID, model.UserSubject(tc.UserID),
		model.Entity{Type: "invite", ID: invite.ID.String()},
		map[string]interface{}{"email": invite.Email, "role": invite.InvitedRole}))
	return invite, nil
}

func (s *InviteService) acceptLink(token string) string {
	return strings.TrimRight(s.config.BaseURL, "/") + "/invites/" + url.PathEscape(token)
}

// ensureNotMember refuses to invite an address that already holds an active
// membership in the company.
func (s *InviteService) ensureNotMember(ctx context.Context, companyID uuid.UUID, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	m, err := s.membershipRepo.FindByUserAndCompany(ctx, user.ID, companyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if m.IsActive {
		return &domain.ConflictError{Field: "membership"}
	}
	return nil
}

// ListPending returns the company's invites that can still be accepted.
func (s *InviteService) ListPending(ctx context.Context, tc *model.TenantContext) ([]*model.MembershipInvite, error) {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	return s.repo.FindPendingByCompany(ctx, tc.CompanyID, s.now().UTC())
}

func (s *InviteService) Revoke(ctx context.Context, tc *model.TenantContext, id uuid.UUID) error {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return domain.ErrInsufficientRole
	}
	if err := s.repo.Revoke(ctx, tc.CompanyID, id); err != nil {
		return err
	}

	metrics.InvitesTotal.WithLabelValues("revoked").Inc()
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionInviteRevoke, tc.TenantID, model.UserSubject(tc.UserID),
		model.Entity{Type: "invite", ID: id.String()}, nil))
	return nil
}

// FindByToken returns the pending invite for token. Expired, consumed and
// unknown tokens all yield domain.ErrInviteNotFound.
func (s *InviteService) FindByToken(ctx context.Context, token string) (*model.MembershipInvite, error) {
	if token == "" {
		return nil, domain.ErrInviteNotFound
	}
	return s.repo.FindPendingByTokenHash(ctx, hashInviteToken(token), s.now().UTC())
}

// Accept consumes the invite for user and creates or reactivates the
// membership. Checks run in order: verified email, matching email, allowed
// domain.
func (s *InviteService) Accept(ctx context.Context, user *model.User, token string) (*model.Membership, error) {
	if s.config.RequireVerifiedEmail && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	invite, err := s.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInviteNotFound) {
			metrics.InvitesTotal.WithLabelValues("expired").Inc()
		}
		return nil, err
	}

	if model.NormalizeEmail(user.Email) != model.NormalizeEmail(invite.Email) {
		metrics.InvitesTotal.WithLabelValues("mismatch").Inc()
		slog.WarnContext(ctx, "Invite email mismatch", "inviteID", invite.ID, "userID", user.ID)
		return nil, domain.ErrEmailMismatch
	}

	if invite.Company != nil && invite.Company.Settings.RestrictsDomains() && !invite.Company.Settings.AllowsDomain(user.EmailDomain()) {
		metrics.InvitesTotal.WithLabelValues("domain_denied").Inc()
		return nil, domain.ErrDomainNotAllowed
	}

	membership, err := s.repo.Accept(ctx, invite.TokenHash, user.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.InvitesTotal.WithLabelValues("accepted").Inc()
	slog.InfoContext(ctx, "Invite accepted", "inviteID", invite.ID, "userID", user.ID, "tenantID", invite.TenantID)
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionInviteAccept, invite.TenantID, model.UserSubject(user.ID),
		model.Entity{Type: "membership", ID: membership.ID.String()},
		map[string]interface{}{"invite_id": invite.ID.String(), "company_role": membership.CompanyRole}))
	return membership, nil
}

// GarbageCollect deletes invites that expired before the cutoff.
func (s *InviteService) GarbageCollect(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now().UTC().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "Expired invites deleted", "count", n)
	return n, nil
}

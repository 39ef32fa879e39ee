// internal/service/user.go
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

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/auth"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

type UserService struct {
	repo           repository.UserRepositoryIface
	companyRepo    repository.CompanyRepositoryIface
	membershipRepo repository.MembershipRepositoryIface
	auditLog       audit.Logger
	validate       *validator.Validate
	now            func() time.Time
}

func NewUserService(
	repo repository.UserRepositoryIface,
	companyRepo repository.CompanyRepositoryIface,
	membershipRepo repository.MembershipRepositoryIface,
	auditLog audit.Logger,
) *UserService {
	return &UserService{
		repo:           repo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		auditLog:       auditLog,
		validate:       validation.New(),
		now:            time.Now,
	}
}

type principalInput struct {
	ExternalID string `json:"external_id" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=320"`
}

type LoginOutput struct {
	User        *model.User         `json:"user"`
	Memberships []*model.Membership `json:"memberships"`
}

// Login upserts the user behind an authenticated principal and, for verified
// operator-domain addresses, ensures the operator membership exists.
func (s *UserService) Login(ctx context.Context, p auth.Principal) (*LoginOutput, error) {
	if err := s.validate.Struct(principalInput{ExternalID: p.ExternalID, Email: p.Email}); err != nil {
		return nil, validation.Translate(err)
	}

	user, err := s.upsert(ctx, p)
	if err != nil {
		return nil, err
	}

	if user.EmailVerified {
		if err := s.ensureOperatorMembership(ctx, user); err != nil {
			return nil, fmt.Errorf("operator auto-join: %w", err)
		}
	}

	memberships, err := s.membershipRepo.FindByUser(ctx, user.ID, true)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: user, Memberships: memberships}, nil
}

// upsert finds the user by external id, falling back to a verified email
// match so a changed identity provider subject relinks the same account.
func (s *UserService) upsert(ctx context.Context, p auth.Principal) (*model.User, error) {
	now := s.now().UTC()
	email := model.NormalizeEmail(p.Email)

	user, err := s.repo.FindByExternalID(ctx, p.ExternalID)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.repo.FindByEmail(ctx, email)
		if err == nil && !p.EmailVerified {
			return nil, &domain.ConflictError{Field: "email"}
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &model.User{
			ID:            uuid.New(),
			ExternalID:    p.ExternalID,
			Email:         email,
			DisplayName:   displayName(p),
			EmailVerified: p.EmailVerified,
			LastLoginAt:   &now,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err, "external_id") {
				// A concurrent login created the row first.
				return s.repo.FindByExternalID(ctx, p.ExternalID)
			}
			return nil, err
		}
		slog.InfoContext(ctx, "User created", "userID", user.ID)
		return user, nil
	case err != nil:
		return nil, err
	}

	user.ExternalID = p.ExternalID
	user.Email = email
	user.EmailVerified = p.EmailVerified
	user.LastLoginAt = &now
	if user.DisplayName == "" {
		user.DisplayName = displayName(p)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func displayName(p auth.Principal) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return strings.SplitN(p.Email, "@", 2)[0]
}

// ensureOperatorMembership adds a member/viewer membership in the operator
// company when the user's domain is on its allowed list. An existing
// membership is left alone, including a deactivated one.
func (s *UserService) ensureOperatorMembership(ctx context.Context, user *model.User) error {
	operator, err := s.companyRepo.FindOperator(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !operator.Settings.AllowsDomain(user.EmailDomain()) {
		return nil
	}

	_, err = s.membershipRepo.FindByUserAndCompany(ctx, user.ID, operator.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	now := s.now().UTC()
	platformRole := model.PlatformRoleViewer
	m := &model.Membership{
		ID:           uuid.New(),
		UserID:       user.ID,
		CompanyID:    operator.ID,
		TenantID:     operator.TenantID,
		CompanyRole:  model.CompanyRoleMember,
		PlatformRole: &platformRole,
		IsActive:     true,
		AcceptedAt:   &now,
	}
	if err := s.membershipRepo.Create(ctx, m); err != nil {
		if repository.IsUniqueViolation(err, "membership") {
			return nil
		}
		return err
	}

	slog.InfoContext(ctx, "Operator membership created by domain", "userID", user.ID, "tenantID", operator.TenantID)
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionMembershipCreate, operator.TenantID,
		model.UserSubject(user.ID), model.Entity{Type: "membership", ID: m.ID.String()},
		map[string]interface{}{"source": "operator_domain", "company_role": m.CompanyRole, "platform_role": platformRole}))
	return nil
}

// Authenticate maps a principal onto an existing user. Principals that never
// logged in are unauthorized.
func (s *UserService) Authenticate(ctx context.Context, p auth.Principal) (*model.User, error) {
	user, err := s.repo.FindByExternalID(ctx, p.ExternalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	// The session token is authoritative for the verification flag.
	user.EmailVerified = p.EmailVerified
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByEmail is used by the operator provisioning command.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, model.NormalizeEmail(email))
}

// ListMemberships returns the user's active memberships, most recently
// accepted first.
func (s *UserService) ListMemberships(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error) {
	return s.membershipRepo.FindByUser(ctx, userID, true)
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/email"
	"github.com/tenderdesk/tenderdesk/internal/email/mailer"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

type RegistrationMode string

const (
	ModeCreateCompany     RegistrationMode = "create_company"
	ModeJoinCompany       RegistrationMode = "join_company"
	ModeRequestDomainJoin RegistrationMode = "request_domain_join"
)

// RegistrationService completes onboarding for a logged in user: found a
// company, accept an invite, or ask the owners of a matching company to
// invite them.
type RegistrationService struct {
	companies      *CompanyService
	invites        *InviteService
	companyRepo    repository.CompanyRepositoryIface
	membershipRepo repository.MembershipRepositoryIface
	sender         email.Sender
	config         *config.Config
	validate       *validator.Validate
}

func NewRegistrationService(
	companies *CompanyService,
	invites *InviteService,
	companyRepo repository.CompanyRepositoryIface,
	membershipRepo repository.MembershipRepositoryIface,
	sender email.Sender,
	cfg *config.Config,
) *RegistrationService {
	return &RegistrationService{
		companies:      companies,
		invites:        invites,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		sender:         sender,
		config:         cfg,
		validate:       validation.New(),
	}
}

type RegisterInput struct {
	Mode        RegistrationMode    `json:"mode" validate:"required,oneof=create_company join_company request_domain_join"`
	Company     *CreateCompanyInput `json:"company" validate:"required_if=Mode create_company"`
	InviteToken string              `json:"invite_token" validate:"required_if=Mode join_company,max=128"`
	CompanyID   *uuid.UUID          `json:"company_id"`
}

type RegisterOutput struct {
	Mode       RegistrationMode  `json:"mode"`
	Company    *model.Company    `json:"company,omitempty"`
	Membership *model.Membership `json:"membership,omitempty"`
	// NotifiedOwners is the number of owners mailed for a domain join
	// request.
	NotifiedOwners int `json:"notified_owners,omitempty"`
}

func (s *RegistrationService) Register(ctx context.Context, user *model.User, input RegisterInput) (*RegisterOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	if s.config.RequireVerifiedEmail && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	switch input.Mode {
	case ModeCreateCompany:
		out, err := s.companies.CreateCompany(ctx, user, *input.Company)
		if err != nil {
			return nil, err
		}
		return &RegisterOutput{Mode: input.Mode, Company: out.Company, Membership: out.Membership}, nil

	case ModeJoinCompany:
		m, err := s.invites.Accept(ctx, user, input.InviteToken)
		if err != nil {
			return nil, err
		}
		return &RegisterOutput{Mode: input.Mode, Membership: m}, nil

	default:
		company, notified, err := s.requestDomainJoin(ctx, user, input.CompanyID)
		if err != nil {
			return nil, err
		}
		return &RegisterOutput{Mode: input.Mode, Company: company, NotifiedOwners: notified}, nil
	}
}

// requestDomainJoin mails every active owner of the company whose allowed
// domains include the user's. No membership is created; mail failures are
// logged and do not fail the request.
func (s *RegistrationService) requestDomainJoin(ctx context.Context, user *model.User, companyID *uuid.UUID) (*model.Company, int, error) {
	companies, err := s.companyRepo.FindByAllowedDomain(ctx, user.EmailDomain())
	if err != nil {
		return nil, 0, err
	}
	company, err := pickDomainCompany(companies, companyID)
	if err != nil {
		return nil, 0, err
	}

	if m, err := s.membershipRepo.FindByUserAndCompany(ctx, user.ID, company.ID); err == nil && m.IsActive {
		return nil, 0, &domain.ConflictError{Field: "membership"}
	}

	members, err := s.membershipRepo.FindByCompany(ctx, company.ID, true)
	if err != nil {
		return nil, 0, err
	}

	link := strings.TrimRight(s.config.BaseURL, "/") + "/settings/members"
	notified := 0
	for _, m := range members {
		if m.CompanyRole != model.CompanyRoleOwner || m.User == nil {
			continue
		}
		mailCtx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
		err := mailer.SendDomainJoinRequest(mailCtx, s.sender, m.User.Email, mailer.DomainJoinTemplateData{
			CompanyName:    company.Name,
			OwnerName:      m.User.DisplayName,
			RequesterName:  user.DisplayName,
			RequesterEmail: user.Email,
			MembersLink:    link,
		})
		cancel()
		metrics.ExternalCallsTotal.WithLabelValues("mail", metrics.Result(err)).Inc()
		if err != nil {
			slog.WarnContext(ctx, "Failed to send domain join request", "error", err, "tenantID", company.TenantID, "ownerID", m.UserID)
			continue
		}
		notified++
	}

	slog.InfoContext(ctx, "Domain join requested", "userID", user.ID, "tenantID", company.TenantID, "notified", notified)
	return company, notified, nil
}

// pickDomainCompany selects the requested company from the domain matches,
// or the only match when none is requested.
func pickDomainCompany(companies []*model.Company, companyID *uuid.UUID) (*model.Company, error) {
	if len(companies) == 0 {
		return nil, domain.ErrNoDomainMatch
	}
	if companyID == nil {
		if len(companies) > 1 {
			return nil, domain.NewValidationError("company_id", "several companies accept this domain, choose one")
		}
		return companies[0], nil
	}
	for _, c := range companies {
		if c.ID == *companyID {
			return c, nil
		}
	}
	return nil, domain.ErrNoDomainMatch
}

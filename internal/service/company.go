package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

const tenantIDAttempts = 5

type CompanyService struct {
	repo     repository.CompanyRepositoryIface
	auditLog audit.Logger
	config   *config.Config
	validate *validator.Validate
	now      func() time.Time
}

func NewCompanyService(repo repository.CompanyRepositoryIface, auditLog audit.Logger, cfg *config.Config) *CompanyService {
	return &CompanyService{
		repo:     repo,
		auditLog: auditLog,
		config:   cfg,
		validate: validation.New(),
		now:      time.Now,
	}
}

type CreateCompanyInput struct {
	Name                string   `json:"name" validate:"required,min=2,max=200"`
	KvKNumber           *string  `json:"kvk_number" validate:"omitempty,kvk"`
	AllowedEmailDomains []string `json:"allowed_email_domains" validate:"omitempty,max=20,dive,fqdn"`
}

type CreateCompanyOutput struct {
	Company    *model.Company    `json:"company"`
	Membership *model.Membership `json:"membership"`
}

// CreateCompany creates a tenant with the user as its first owner. A taken
// name is a conflict on "name"; tenant id collisions are retried.
func (s *CompanyService) CreateCompany(ctx context.Context, user *model.User, input CreateCompanyInput) (*CreateCompanyOutput, error) {
	return s.create(ctx, user, input, false, nil)
}

// ProvisionOperator creates the platform operator's own company with the
// user as owner and super admin. Only one operator company may exist.
func (s *CompanyService) ProvisionOperator(ctx context.Context, user *model.User, input CreateCompanyInput) (*CreateCompanyOutput, error) {
	_, err := s.repo.FindOperator(ctx)
	if err == nil {
		return nil, &domain.ConflictError{Field: "operator"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	superAdmin := model.PlatformRoleSuperAdmin
	return s.create(ctx, user, input, true, &superAdmin)
}

func (s *CompanyService) create(ctx context.Context, user *model.User, input CreateCompanyInput, internal bool, platformRole *model.PlatformRole) (*CreateCompanyOutput, error) {
	if s.config.RequireVerifiedEmail && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	now := s.now().UTC()
	for attempt := 1; ; attempt++ {
		tenantID, err := newTenantID(input.Name)
		if err != nil {
			return nil, fmt.Errorf("generating tenant id: %w", err)
		}

		company := &model.Company{
			ID:                 uuid.New(),
			Name:               input.Name,
			KvKNumber:          input.KvKNumber,
			TenantID:           tenantID,
			IsInternal:         internal,
			Settings:           model.CompanySettings{AllowedEmailDomains: normalizeDomains(input.AllowedEmailDomains)},
			SubscriptionPlan:   "trial",
			SubscriptionStatus: model.SubscriptionTrial,
			CreatedByID:        &user.ID,
		}
		owner := &model.Membership{
			ID:           uuid.New(),
			UserID:       user.ID,
			CompanyRole:  model.CompanyRoleOwner,
			PlatformRole: platformRole,
			IsActive:     true,
			AcceptedAt:   &now,
		}

		err = s.repo.CreateWithOwner(ctx, company, owner)
		if repository.IsUniqueViolation(err, "tenant_id") && attempt < tenantIDAttempts {
			slog.WarnContext(ctx, "Tenant id collision, retrying", "tenantID", tenantID, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		slog.InfoContext(ctx, "Company created", "tenantID", company.TenantID, "userID", user.ID, "internal", internal)
		recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionMembershipCreate, company.TenantID,
			model.UserSubject(user.ID), model.Entity{Type: "membership", ID: owner.ID.String()},
			map[string]interface{}{"source": "company_creation", "company_role": owner.CompanyRole}))

		return &CreateCompanyOutput{Company: company, Membership: owner}, nil
	}
}

func (s *CompanyService) GetCompany(ctx context.Context, tc *model.TenantContext) (*model.Company, error) {
	return s.repo.FindByID(ctx, tc.CompanyID)
}

type UpdateSettingsInput struct {
	AllowedEmailDomains *[]string `json:"allowed_email_domains" validate:"omitempty,max=20,dive,fqdn"`
	Branding            *struct {
		LogoURL      string `json:"logo_url" validate:"omitempty,url,max=2048"`
		PrimaryColor string `json:"primary_color" validate:"omitempty,hexcolor"`
	} `json:"branding"`
	Contact *struct {
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone" validate:"omitempty,max=32"`
		Address string `json:"address" validate:"omitempty,max=500"`
	} `json:"contact"`
}

// UpdateSettings changes branding, contact details or allowed email domains.
// Requires admin or higher.
func (s *CompanyService) UpdateSettings(ctx context.Context, tc *model.TenantContext, input UpdateSettingsInput) (*model.Company, error) {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	company, err := s.repo.FindByID(ctx, tc.CompanyID)
	if err != nil {
		return nil, err
	}

	settings := company.Settings
	if input.AllowedEmailDomains != nil {
		settings.AllowedEmailDomains = normalizeDomains(*input.AllowedEmailDomains)
	}
	if input.Branding != nil {
		settings.Branding = model.Branding{LogoURL: input.Branding.LogoURL, PrimaryColor: input.Branding.PrimaryColor}
	}
	if input.Contact != nil {
		settings.Contact = model.ContactInfo{Email: input.Contact.Email, Phone: input.Contact.Phone, Address: input.Contact.Address}
	}

	if err := s.repo.UpdateSettings(ctx, company.ID, settings); err != nil {
		return nil, err
	}
	company.Settings = settings

	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionCompanySettings, tc.TenantID,
		model.UserSubject(tc.UserID), model.Entity{Type: "company", ID: company.ID.String()},
		map[string]interface{}{"allowed_email_domains": settings.AllowedEmailDomains}))
	return company, nil
}

// normalizeDomains lowercases, trims and deduplicates, keeping order.
func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

type ClientCompanyService struct {
	repo     repository.ClientCompanyRepositoryIface
	auditLog audit.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewClientCompanyService(repo repository.ClientCompanyRepositoryIface, auditLog audit.Logger) *ClientCompanyService {
	return &ClientCompanyService{
		repo:     repo,
		auditLog: auditLog,
		validate: validation.New(),
		now:      time.Now,
	}
}

type ClientCompanyInput struct {
	Name      string          `json:"name" validate:"required,min=2,max=200"`
	KvKNumber *string         `json:"kvk_number" validate:"omitempty,kvk"`
	Sector    string          `json:"sector" validate:"max=100"`
	City      string          `json:"city" validate:"max=100"`
	IKPScore  *int            `json:"ikp_score" validate:"omitempty,gte=0,lte=100"`
	KnockOuts model.KnockOuts `json:"knock_outs" validate:"max=50,dive"`
}

func (s *ClientCompanyService) Create(ctx context.Context, tc *model.TenantContext, input ClientCompanyInput) (*model.ClientCompany, error) {
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, domain.ErrInsufficientRole
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	client := &model.ClientCompany{
		ID:          uuid.New(),
		TenantID:    tc.TenantID,
		Name:        input.Name,
		KvKNumber:   input.KvKNumber,
		Sector:      input.Sector,
		City:        input.City,
		IKPScore:    input.IKPScore,
		KnockOuts:   input.KnockOuts,
		Status:      model.ClientStatusActive,
		CreatedByID: tc.UserID,
	}
	if client.KnockOuts == nil {
		client.KnockOuts = model.KnockOuts{}
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Client company created", "clientID", client.ID, "tenantID", tc.TenantID)
	return client, nil
}

func (s *ClientCompanyService) Get(ctx context.Context, tc *model.TenantContext, id uuid.UUID) (*model.ClientCompany, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, domain.ErrInsufficientRole
	}
	client, err := s.repo.FindByID(ctx, tc.TenantID, id)
	if err != nil {
		return nil, scopedErr(ctx, s.auditLog, tc, "client_company", id, err)
	}
	return client, nil
}

func (s *ClientCompanyService) List(ctx context.Context, tc *model.TenantContext, includeArchived bool, page repository.Page) ([]*model.ClientCompany, int64, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, tc.TenantID, includeArchived, page)
}

// Update replaces the editable fields of an active client company.
func (s *ClientCompanyService) Update(ctx context.Context, tc *model.TenantContext, id uuid.UUID, input ClientCompanyInput) (*model.ClientCompany, error) {
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, domain.ErrInsufficientRole
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	client, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if client.Status == model.ClientStatusArchived {
		return nil, domain.NewValidationError("status", "archived client companies cannot be edited")
	}

	client.Name = input.Name
	client.KvKNumber = input.KvKNumber
	client.Sector = input.Sector
	client.City = input.City
	client.IKPScore = input.IKPScore
	client.KnockOuts = input.KnockOuts
	if client.KnockOuts == nil {
		client.KnockOuts = model.KnockOuts{}
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, scopedErr(ctx, s.auditLog, tc, "client_company", id, err)
	}
	return client, nil
}

// Archive hides a client company from lists. Clients with open bids are
// refused with domain.ErrActiveBids.
func (s *ClientCompanyService) Archive(ctx context.Context, tc *model.TenantContext, id uuid.UUID) error {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return domain.ErrInsufficientRole
	}
	if err := s.repo.Archive(ctx, tc.TenantID, id, s.now().UTC()); err != nil {
		return scopedErr(ctx, s.auditLog, tc, "client_company", id, err)
	}
	slog.InfoContext(ctx, "Client company archived", "clientID", id, "tenantID", tc.TenantID, "userID", tc.UserID)
	return nil
}

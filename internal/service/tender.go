package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

type TenderService struct {
	repo     repository.TenderRepositoryIface
	auditLog audit.Logger
	validate *validator.Validate
}

func NewTenderService(repo repository.TenderRepositoryIface, auditLog audit.Logger) *TenderService {
	return &TenderService{
		repo:     repo,
		auditLog: auditLog,
		validate: validation.New(),
	}
}

type CreateTenderInput struct {
	ExternalRef          string     `json:"external_ref" validate:"required,max=100"`
	Title                string     `json:"title" validate:"required,max=500"`
	ContractingAuthority string     `json:"contracting_authority" validate:"max=300"`
	Description          string     `json:"description" validate:"max=20000"`
	CPVCodes             []string   `json:"cpv_codes" validate:"max=50,dive,cpv"`
	EstimatedValue       *int64     `json:"estimated_value" validate:"omitempty,gte=0"`
	Deadline             *time.Time `json:"deadline"`
}

func (s *TenderService) Create(ctx context.Context, tc *model.TenantContext, input CreateTenderInput) (*model.Tender, error) {
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, domain.ErrInsufficientRole
	}
	input.ExternalRef = strings.TrimSpace(input.ExternalRef)
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	tender := &model.Tender{
		ID:                   uuid.New(),
		TenantID:             tc.TenantID,
		ExternalRef:          input.ExternalRef,
		Title:                input.Title,
		ContractingAuthority: input.ContractingAuthority,
		Description:          input.Description,
		CPVCodes:             pq.StringArray(input.CPVCodes),
		EstimatedValue:       input.EstimatedValue,
		Deadline:             input.Deadline,
		Status:               model.TenderStatusOpen,
		CreatedByID:          tc.UserID,
	}
	if tender.CPVCodes == nil {
		tender.CPVCodes = pq.StringArray{}
	}
	if err := s.repo.Create(ctx, tender); err != nil {
		return nil, err
	}
	return tender, nil
}

func (s *TenderService) Get(ctx context.Context, tc *model.TenantContext, id uuid.UUID) (*model.Tender, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, domain.ErrInsufficientRole
	}
	tender, err := s.repo.FindByID(ctx, tc.TenantID, id)
	if err != nil {
		return nil, scopedErr(ctx, s.auditLog, tc, "tender", id, err)
	}
	return tender, nil
}

func (s *TenderService) List(ctx context.Context, tc *model.TenantContext, filter repository.TenderFilter) ([]*model.Tender, int64, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, tc.TenantID, filter)
}

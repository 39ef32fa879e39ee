package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

// KnowledgeService keeps the metadata of a tenant's reference documents.
// Uploading the bytes happens directly against object storage.
type KnowledgeService struct {
	repo     repository.KnowledgeRepositoryIface
	auditLog audit.Logger
	validate *validator.Validate
}

func NewKnowledgeService(repo repository.KnowledgeRepositoryIface, auditLog audit.Logger) *KnowledgeService {
	return &KnowledgeService{
		repo:     repo,
		auditLog: auditLog,
		validate: validation.New(),
	}
}

type CreateDocumentInput struct {
	Title       string `json:"title" validate:"required,max=300"`
	FileName    string `json:"file_name" validate:"required,max=255"`
	StorageKey  string `json:"storage_key" validate:"required,max=1024"`
	ContentType string `json:"content_type" validate:"required,max=255"`
	SizeBytes   int64  `json:"size_bytes" validate:"gte=0"`
	Summary     string `json:"summary" validate:"max=20000"`
}

func (s *KnowledgeService) Create(ctx context.Context, tc *model.TenantContext, input CreateDocumentInput) (*model.KnowledgeDocument, error) {
	if !tc.HasCompanyRole(model.CompanyRoleMember) {
		return nil, domain.ErrInsufficientRole
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}

	doc := &model.KnowledgeDocument{
		ID:           uuid.New(),
		TenantID:     tc.TenantID,
		Title:        input.Title,
		FileName:     input.FileName,
		StorageKey:   input.StorageKey,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
		Summary:      input.Summary,
		UploadedByID: tc.UserID,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *KnowledgeService) Get(ctx context.Context, tc *model.TenantContext, id uuid.UUID) (*model.KnowledgeDocument, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, domain.ErrInsufficientRole
	}
	doc, err := s.repo.FindByID(ctx, tc.TenantID, id)
	if err != nil {
		return nil, scopedErr(ctx, s.auditLog, tc, "knowledge_document", id, err)
	}
	return doc, nil
}

func (s *KnowledgeService) List(ctx context.Context, tc *model.TenantContext, page repository.Page) ([]*model.KnowledgeDocument, int64, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, tc.TenantID, page)
}

func (s *KnowledgeService) Delete(ctx context.Context, tc *model.TenantContext, id uuid.UUID) error {
	if !tc.HasCompanyRole(model.CompanyRoleAdmin) {
		return domain.ErrInsufficientRole
	}
	// Resolve first so a cross-tenant id is audited before the scoped delete.
	if _, err := s.Get(ctx, tc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tc.TenantID, id); err != nil {
		return scopedErr(ctx, s.auditLog, tc, "knowledge_document", id, err)
	}
	slog.InfoContext(ctx, "Knowledge document deleted", "documentID", id, "tenantID", tc.TenantID, "userID", tc.UserID)
	return nil
}

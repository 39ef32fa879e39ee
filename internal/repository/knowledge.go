package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type KnowledgeRepositoryIface interface {
	Create(ctx context.Context, doc *model.KnowledgeDocument) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.KnowledgeDocument, error)
	List(ctx context.Context, tenantID string, page Page) ([]*model.KnowledgeDocument, int64, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type KnowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

func (r *KnowledgeRepository) Create(ctx context.Context, doc *model.KnowledgeDocument) error {
	return translate(r.db.WithContext(ctx).Create(doc).Error, "creating knowledge document", domain.ErrNotFound)
}

func (r *KnowledgeRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.KnowledgeDocument, error) {
	var doc model.KnowledgeDocument
	if err := findScoped(ctx, r.db, tenantID, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *KnowledgeRepository) List(ctx context.Context, tenantID string, page Page) ([]*model.KnowledgeDocument, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.KnowledgeDocument{}).Where("tenant_id = ?", tenantID)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting knowledge documents: %w", err)
	}

	var docs []*model.KnowledgeDocument
	if err := q.Scopes(page.apply).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing knowledge documents: %w", err)
	}
	return docs, count, nil
}

func (r *KnowledgeRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.KnowledgeDocument{})
	if result.Error != nil {
		return fmt.Errorf("deleting knowledge document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return missingScoped[model.KnowledgeDocument](ctx, r.db, id)
	}
	return nil
}

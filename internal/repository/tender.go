package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type TenderFilter struct {
	Status *model.TenderStatus
	CPV    string
	Page
}

type TenderRepositoryIface interface {
	Create(ctx context.Context, tender *model.Tender) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Tender, error)
	List(ctx context.Context, tenantID string, filter TenderFilter) ([]*model.Tender, int64, error)
}

type TenderRepository struct {
	db *gorm.DB
}

func NewTenderRepository(db *gorm.DB) *TenderRepository {
	return &TenderRepository{db: db}
}

func (r *TenderRepository) Create(ctx context.Context, tender *model.Tender) error {
	return translate(r.db.WithContext(ctx).Create(tender).Error, "creating tender", domain.ErrNotFound)
}

func (r *TenderRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Tender, error) {
	var tender model.Tender
	if err := findScoped(ctx, r.db, tenantID, id, &tender); err != nil {
		return nil, err
	}
	return &tender, nil
}

func (r *TenderRepository) List(ctx context.Context, tenantID string, filter TenderFilter) ([]*model.Tender, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Tender{}).Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.CPV != "" {
		q = q.Where("? = ANY(cpv_codes)", filter.CPV)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting tenders: %w", err)
	}

	var tenders []*model.Tender
	if err := q.Scopes(filter.Page.apply).Order("deadline ASC NULLS LAST, created_at DESC").Find(&tenders).Error; err != nil {
		return nil, 0, fmt.Errorf("listing tenders: %w", err)
	}
	return tenders, count, nil
}

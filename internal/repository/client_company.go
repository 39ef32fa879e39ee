package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type ClientCompanyRepositoryIface interface {
	Create(ctx context.Context, client *model.ClientCompany) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.ClientCompany, error)
	List(ctx context.Context, tenantID string, includeArchived bool, page Page) ([]*model.ClientCompany, int64, error)
	Update(ctx context.Context, client *model.ClientCompany) error
	Archive(ctx context.Context, tenantID string, id uuid.UUID, at time.Time) error
}

type ClientCompanyRepository struct {
	db *gorm.DB
}

func NewClientCompanyRepository(db *gorm.DB) *ClientCompanyRepository {
	return &ClientCompanyRepository{db: db}
}

func (r *ClientCompanyRepository) Create(ctx context.Context, client *model.ClientCompany) error {
	return translate(r.db.WithContext(ctx).Create(client).Error, "creating client company", domain.ErrNotFound)
}

func (r *ClientCompanyRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.ClientCompany, error) {
	var client model.ClientCompany
	if err := findScoped(ctx, r.db, tenantID, id, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientCompanyRepository) List(ctx context.Context, tenantID string, includeArchived bool, page Page) ([]*model.ClientCompany, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ClientCompany{}).Where("tenant_id = ?", tenantID)
	if !includeArchived {
		q = q.Where("status = ?", model.ClientStatusActive)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting client companies: %w", err)
	}

	var clients []*model.ClientCompany
	if err := q.Scopes(page.apply).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("listing client companies: %w", err)
	}
	return clients, count, nil
}

// Update saves the editable fields. The tenant id is part of the predicate,
// so a record of another tenant is never touched.
func (r *ClientCompanyRepository) Update(ctx context.Context, client *model.ClientCompany) error {
	result := r.db.WithContext(ctx).
		Model(&model.ClientCompany{}).
		Where("id = ? AND tenant_id = ?", client.ID, client.TenantID).
		Select("name", "kvk_number", "sector", "city", "ikp_score", "knock_outs").
		Updates(client)
	if result.Error != nil {
		return translate(result.Error, "updating client company", domain.ErrNotFound)
	}
	if result.RowsAffected == 0 {
		return missingScoped[model.ClientCompany](ctx, r.db, client.ID)
	}
	return nil
}

// Archive soft-deletes the client. It is refused while the client has bids
// that are not completed.
func (r *ClientCompanyRepository) Archive(ctx context.Context, tenantID string, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		err := tx.Model(&model.Bid{}).
			Where("tenant_id = ? AND client_company_id = ? AND completed_at IS NULL", tenantID, id).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.ErrActiveBids
		}

		result := tx.Model(&model.ClientCompany{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Updates(map[string]interface{}{
				"status":      model.ClientStatusArchived,
				"archived_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return missingScoped[model.ClientCompany](ctx, tx, id)
		}
		return nil
	})
	return translate(err, "archiving client company", domain.ErrNotFound)
}

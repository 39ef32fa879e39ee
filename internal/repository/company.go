package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type CompanyRepositoryIface interface {
	CreateWithOwner(ctx context.Context, company *model.Company, owner *model.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	FindByTenantID(ctx context.Context, tenantID string) (*model.Company, error)
	FindOperator(ctx context.Context) (*model.Company, error)
	FindByAllowedDomain(ctx context.Context, emailDomain string) ([]*model.Company, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings model.CompanySettings) error
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// CreateWithOwner inserts the company and its first owner membership in one
// transaction. A taken name or tenant id is reported as a conflict.
func (r *CompanyRepository) CreateWithOwner(ctx context.Context, company *model.Company, owner *model.Membership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		owner.CompanyID = company.ID
		owner.TenantID = company.TenantID
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		return nil
	})
	return translate(err, "creating company", domain.ErrNotFound)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, translate(err, "finding company", domain.ErrNotFound)
	}
	return &company, nil
}

func (r *CompanyRepository) FindByTenantID(ctx context.Context, tenantID string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&company).Error; err != nil {
		return nil, translate(err, "finding company by tenant", domain.ErrNotFound)
	}
	return &company, nil
}

// FindOperator returns the platform operator's own company.
func (r *CompanyRepository) FindOperator(ctx context.Context) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("is_internal = ? AND archived_at IS NULL", true).
		Order("created_at ASC").
		First(&company).Error
	if err != nil {
		return nil, translate(err, "finding operator company", domain.ErrNotFound)
	}
	return &company, nil
}

// FindByAllowedDomain returns the non-archived companies that list emailDomain in
// their allowed email domains.
func (r *CompanyRepository) FindByAllowedDomain(ctx context.Context, emailDomain string) ([]*model.Company, error) {
	var companies []*model.Company
	err := r.db.WithContext(ctx).
		Where("archived_at IS NULL").
		Where("settings -> 'allowed_email_domains' @> jsonb_build_array(?::text)", strings.ToLower(emailDomain)).
		Order("name ASC").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("finding companies by domain: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings model.CompanySettings) error {
	result := r.db.WithContext(ctx).
		Model(&model.Company{}).
		Where("id = ?", id).
		Update("settings", settings)
	if result.Error != nil {
		return fmt.Errorf("updating company settings: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

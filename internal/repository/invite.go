package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type InviteRepositoryIface interface {
	Create(ctx context.Context, invite *model.MembershipInvite) error
	FindPendingByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.MembershipInvite, error)
	FindPendingByCompany(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*model.MembershipInvite, error)
	Accept(ctx context.Context, tokenHash string, userID uuid.UUID, now time.Time) (*model.Membership, error)
	Revoke(ctx context.Context, companyID, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *model.MembershipInvite) error {
	invite.Email = model.NormalizeEmail(invite.Email)
	return translate(r.db.WithContext(ctx).Create(invite).Error, "creating invite", domain.ErrNotFound)
}

// FindPendingByTokenHash only matches invites that are unaccepted and
// unexpired at now. Anything else is domain.ErrInviteNotFound.
func (r *InviteRepository) FindPendingByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.MembershipInvite, error) {
	var invite model.MembershipInvite
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("token_hash = ? AND accepted_at IS NULL AND expires_at > ?", tokenHash, now).
		First(&invite).Error
	if err != nil {
		return nil, translate(err, "finding invite", domain.ErrInviteNotFound)
	}
	return &invite, nil
}

func (r *InviteRepository) FindPendingByCompany(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*model.MembershipInvite, error) {
	var invites []*model.MembershipInvite
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND accepted_at IS NULL AND expires_at > ?", companyID, now).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("finding company invites: %w", err)
	}
	return invites, nil
}

// Accept consumes the invite and grants the membership in one transaction.
// The invite is claimed with a single conditional update, so of two
// concurrent acceptances exactly one succeeds. An already active membership
// rolls the claim back and is reported as a conflict.
func (r *InviteRepository) Accept(ctx context.Context, tokenHash string, userID uuid.UUID, now time.Time) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite model.MembershipInvite
		result := tx.Model(&invite).
			Clauses(clause.Returning{}).
			Where("token_hash = ? AND accepted_at IS NULL AND expires_at > ?", tokenHash, now).
			Update("accepted_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return domain.ErrInviteNotFound
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND company_id = ?", userID, invite.CompanyID).
			First(&membership).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			membership = model.Membership{
				ID:          uuid.New(),
				UserID:      userID,
				CompanyID:   invite.CompanyID,
				TenantID:    invite.TenantID,
				CompanyRole: invite.InvitedRole,
				IsActive:    true,
				InvitedByID: &invite.InvitedByID,
				InvitedAt:   &invite.CreatedAt,
				AcceptedAt:  &now,
			}
			return tx.Create(&membership).Error
		case err != nil:
			return err
		case membership.IsActive:
			return &domain.ConflictError{Field: "membership"}
		}

		err = tx.Model(&membership).Updates(map[string]interface{}{
			"company_role":        invite.InvitedRole,
			"is_active":           true,
			"invited_by":          invite.InvitedByID,
			"invited_at":          invite.CreatedAt,
			"accepted_at":         now,
			"deactivated_by":      nil,
			"deactivated_at":      nil,
			"deactivation_reason": nil,
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&membership, "id = ?", membership.ID).Error
	})
	if err != nil {
		return nil, translate(err, "accepting invite", domain.ErrInviteNotFound)
	}
	return &membership, nil
}

// Revoke removes a pending invite of the company.
func (r *InviteRepository) Revoke(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND accepted_at IS NULL", id, companyID).
		Delete(&model.MembershipInvite{})
	if result.Error != nil {
		return fmt.Errorf("revoking invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

// DeleteExpired removes unaccepted invites that expired before the cutoff.
func (r *InviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("accepted_at IS NULL AND expires_at <= ?", before).
		Delete(&model.MembershipInvite{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting expired invites: %w", result.Error)
	}
	return result.RowsAffected, nil
}

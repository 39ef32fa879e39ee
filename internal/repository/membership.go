package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type MembershipRepositoryIface interface {
	Create(ctx context.Context, membership *model.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Membership, error)
	FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*model.Membership, error)
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*model.Membership, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*model.Membership, error)
	FindOperatorMembership(ctx context.Context, userID uuid.UUID) (*model.Membership, error)
	CountActiveOwners(ctx context.Context, companyID uuid.UUID) (int64, error)
	ApplyChanges(ctx context.Context, id uuid.UUID, changes model.MembershipChanges, actorID uuid.UUID, reason *string) (*model.Membership, error)
	TransferOwnership(ctx context.Context, companyID, currentOwnerID, newOwnerID uuid.UUID) error
}

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership. A second row for the same user and company is
// rejected by the unique index and surfaces as a conflict on "membership".
func (r *MembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return translate(r.db.WithContext(ctx).Create(membership).Error, "creating membership", domain.ErrNotFound)
}

func (r *MembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := r.db.WithContext(ctx).Preload("User").First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "finding membership", domain.ErrNotFound)
	}
	return &m, nil
}

func (r *MembershipRepository) FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "finding membership", domain.ErrNotFound)
	}
	return &m, nil
}

// FindByUser returns the user's memberships with their companies, most
// recently accepted first. Ties fall back to creation time and then id so
// the order is stable.
func (r *MembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*model.Membership, error) {
	var memberships []*model.Membership
	q := r.db.WithContext(ctx).Preload("Company").Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("finding user memberships: %w", err)
	}
	SortMostRecentlyAccepted(memberships)
	return memberships, nil
}

// SortMostRecentlyAccepted orders memberships by acceptance time descending,
// with unaccepted rows last, then by creation time descending, then by id.
func SortMostRecentlyAccepted(memberships []*model.Membership) {
	sort.SliceStable(memberships, func(i, j int) bool {
		a, b := memberships[i], memberships[j]
		switch {
		case a.AcceptedAt != nil && b.AcceptedAt == nil:
			return true
		case a.AcceptedAt == nil && b.AcceptedAt != nil:
			return false
		case a.AcceptedAt != nil && !a.AcceptedAt.Equal(*b.AcceptedAt):
			return a.AcceptedAt.After(*b.AcceptedAt)
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return a.ID.String() < b.ID.String()
		}
	})
}

func (r *MembershipRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*model.Membership, error) {
	var memberships []*model.Membership
	q := r.db.WithContext(ctx).Preload("User").Where("company_id = ?", companyID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("created_at ASC").Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("finding company memberships: %w", err)
	}
	return memberships, nil
}

// FindOperatorMembership returns the user's active membership in the
// operator company.
func (r *MembershipRepository) FindOperatorMembership(ctx context.Context, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = memberships.company_id").
		Where("memberships.user_id = ? AND memberships.is_active = ? AND companies.is_internal = ?", userID, true, true).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "finding operator membership", domain.ErrNotFound)
	}
	return &m, nil
}

func (r *MembershipRepository) CountActiveOwners(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return countActiveOwners(r.db.WithContext(ctx), companyID, false)
}

func countActiveOwners(db *gorm.DB, companyID uuid.UUID, lock bool) (int64, error) {
	var ids []uuid.UUID
	q := db.Model(&model.Membership{}).
		Where("company_id = ? AND company_role = ? AND is_active = ?", companyID, model.CompanyRoleOwner, true)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("counting active owners: %w", err)
	}
	return int64(len(ids)), nil
}

// ApplyChanges updates a membership under row locks. If the change would
// remove the company's last active owner it is refused with
// domain.ErrSoleOwner, whoever the actor is.
func (r *MembershipRepository) ApplyChanges(ctx context.Context, id uuid.UUID, changes model.MembershipChanges, actorID uuid.UUID, reason *string) (*model.Membership, error) {
	var updated model.Membership
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Membership
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error; err != nil {
			return err
		}

		if changes.RemovesOwner(&m) {
			owners, err := countActiveOwners(tx, m.CompanyID, true)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return domain.ErrSoleOwner
			}
		}

		updates := map[string]interface{}{}
		if changes.CompanyRole != nil {
			updates["company_role"] = *changes.CompanyRole
		}
		if changes.PlatformRole != nil {
			updates["platform_role"] = *changes.PlatformRole
		}
		if changes.IsActive != nil {
			updates["is_active"] = *changes.IsActive
			if *changes.IsActive {
				updates["deactivated_by"] = nil
				updates["deactivated_at"] = nil
				updates["deactivation_reason"] = nil
			} else if m.IsActive {
				updates["deactivated_by"] = actorID
				updates["deactivated_at"] = time.Now().UTC()
				updates["deactivation_reason"] = reason
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&m).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Preload("User").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "updating membership", domain.ErrNotFound)
	}
	return &updated, nil
}

// TransferOwnership demotes the current owner to admin and promotes the new
// owner in a single transaction. Both users must hold active memberships in
// the company and the current one must be an owner.
func (r *MembershipRepository) TransferOwnership(ctx context.Context, companyID, currentOwnerID, newOwnerID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.Membership
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND user_id IN ? AND is_active = ?", companyID, []uuid.UUID{currentOwnerID, newOwnerID}, true).
			Find(&rows).Error
		if err != nil {
			return err
		}

		var current, next *model.Membership
		for i := range rows {
			switch rows[i].UserID {
			case currentOwnerID:
				current = &rows[i]
			case newOwnerID:
				next = &rows[i]
			}
		}
		if current == nil || next == nil {
			return domain.ErrNotFound
		}
		if current.CompanyRole != model.CompanyRoleOwner {
			return domain.ErrInsufficientRole
		}

		if err := tx.Model(next).Update("company_role", model.CompanyRoleOwner).Error; err != nil {
			return err
		}
		if err := tx.Model(current).Update("company_role", model.CompanyRoleAdmin).Error; err != nil {
			return err
		}
		return nil
	})
	return translate(err, "transferring ownership", domain.ErrNotFound)
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

type BidFilter struct {
	TenderID        *uuid.UUID
	ClientCompanyID *uuid.UUID
	Page
}

type BidRepositoryIface interface {
	Create(ctx context.Context, bid *model.Bid) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Bid, error)
	List(ctx context.Context, tenantID string, filter BidFilter) ([]*model.Bid, int64, error)
	TransitionStage(ctx context.Context, tenantID string, bidID uuid.UUID, stage model.StageName, from model.StageStatus, stageCols, bidCols map[string]interface{}) error
	SetAssignedUsers(ctx context.Context, tenantID string, bidID uuid.UUID, userIDs []uuid.UUID) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	CountOpenByClient(ctx context.Context, tenantID string, clientID uuid.UUID) (int64, error)
}

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create inserts the bid together with its seeded stages.
func (r *BidRepository) Create(ctx context.Context, bid *model.Bid) error {
	return translate(r.db.WithContext(ctx).Create(bid).Error, "creating bid", domain.ErrNotFound)
}

func (r *BidRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Bid, error) {
	var bid model.Bid
	if err := findScoped(ctx, r.db, tenantID, id, &bid, withStages); err != nil {
		return nil, err
	}
	sortStages(&bid)
	return &bid, nil
}

func withStages(db *gorm.DB) *gorm.DB {
	return db.Preload("Stages")
}

func sortStages(bid *model.Bid) {
	sort.Slice(bid.Stages, func(i, j int) bool {
		return bid.Stages[i].Stage.Index() < bid.Stages[j].Stage.Index()
	})
}

func (r *BidRepository) List(ctx context.Context, tenantID string, filter BidFilter) ([]*model.Bid, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Bid{}).Where("tenant_id = ?", tenantID)
	if filter.TenderID != nil {
		q = q.Where("tender_id = ?", *filter.TenderID)
	}
	if filter.ClientCompanyID != nil {
		q = q.Where("client_company_id = ?", *filter.ClientCompanyID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting bids: %w", err)
	}

	var bids []*model.Bid
	if err := q.Scopes(filter.Page.apply, withStages).Order("updated_at DESC").Find(&bids).Error; err != nil {
		return nil, 0, fmt.Errorf("listing bids: %w", err)
	}
	for _, bid := range bids {
		sortStages(bid)
	}
	return bids, count, nil
}

// TransitionStage writes stageCols to the stage only if it is still in the
// from status, and bidCols to the bid in the same transaction. Losing a race
// returns domain.ErrStaleState.
func (r *BidRepository) TransitionStage(ctx context.Context, tenantID string, bidID uuid.UUID, stage model.StageName, from model.StageStatus, stageCols, bidCols map[string]interface{}) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BidStage{}).
			Where("bid_id = ? AND tenant_id = ? AND stage = ? AND status = ?", bidID, tenantID, stage, from).
			Updates(stageCols)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return domain.ErrStaleState
		}

		if bidCols == nil {
			bidCols = map[string]interface{}{}
		}
		bidCols["updated_at"] = time.Now().UTC()
		result = tx.Model(&model.Bid{}).
			Where("id = ? AND tenant_id = ?", bidID, tenantID).
			Updates(bidCols)
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
	return translate(err, "transitioning bid stage", domain.ErrNotFound)
}

func (r *BidRepository) SetAssignedUsers(ctx context.Context, tenantID string, bidID uuid.UUID, userIDs []uuid.UUID) error {
	ids := make(pq.StringArray, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}
	result := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("id = ? AND tenant_id = ?", bidID, tenantID).
		Update("assigned_user_ids", ids)
	if result.Error != nil {
		return fmt.Errorf("assigning bid users: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return missingScoped[model.Bid](ctx, r.db, bidID)
	}
	return nil
}

// Delete removes a bid that has not been completed. Completed bids are kept
// and reported as domain.ErrBidLocked.
func (r *BidRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND completed_at IS NULL", id, tenantID).
		Delete(&model.Bid{})
	if result.Error != nil {
		return fmt.Errorf("deleting bid: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	bid, err := r.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if bid.Completed() {
		return domain.ErrBidLocked
	}
	return domain.ErrStaleState
}

// CountOpenByClient counts the client's bids that are not completed yet.
func (r *BidRepository) CountOpenByClient(ctx context.Context, tenantID string, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("tenant_id = ? AND client_company_id = ? AND completed_at IS NULL", tenantID, clientID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting open bids: %w", err)
	}
	return count, nil
}

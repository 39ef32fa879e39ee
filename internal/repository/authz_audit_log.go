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

// AuthzAuditLogRepository handles database operations for authorization audit logs
type AuthzAuditLogRepository struct {
	db *gorm.DB
}

func NewAuthzAuditLogRepository(db *gorm.DB) *AuthzAuditLogRepository {
	return &AuthzAuditLogRepository{db: db}
}

func (r *AuthzAuditLogRepository) Create(ctx context.Context, log *model.AuthzAuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("creating authorization audit log: %w", err)
	}
	return nil
}

func (r *AuthzAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthzAuditLog, error) {
	var log model.AuthzAuditLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, translate(err, "finding authorization audit log", domain.ErrNotFound)
	}
	return &log, nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	ActionType  string
	TenantID    string
	EntityType  string
	EntityID    string
	SubjectType string
	SubjectID   string
	Result      *bool
	StartTime   time.Time
	EndTime     time.Time
	Limit       int
	Offset      int
}

// Query retrieves audit logs matching params, newest first.
func (r *AuthzAuditLogRepository) Query(ctx context.Context, params QueryParams) ([]model.AuthzAuditLog, int64, error) {
	var logs []model.AuthzAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.AuthzAuditLog{})

	filters := []struct {
		column string
		value  string
	}{
		{"action_type", params.ActionType},
		{"tenant_id", params.TenantID},
		{"entity_type", params.EntityType},
		{"entity_id", params.EntityID},
		{"subject_type", params.SubjectType},
		{"subject_id", params.SubjectID},
	}
	for _, f := range filters {
		if f.value != "" {
			query = query.Where(f.column+" = ?", f.value)
		}
	}
	if params.Result != nil {
		query = query.Where("result = ?", *params.Result)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting authorization audit logs: %w", err)
	}

	page := Page{Offset: params.Offset, Limit: params.Limit}
	if err := query.Scopes(page.apply).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("querying authorization audit logs: %w", err)
	}

	return logs, count, nil
}

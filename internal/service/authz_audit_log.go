package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
)

// Ensure AuthzAuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AuthzAuditLogService)(nil)

// AuthzAuditLogService handles operations related to authorization audit logs
type AuthzAuditLogService struct {
	repo *repository.AuthzAuditLogRepository
}

// NewAuthzAuditLogService creates a new AuthzAuditLogService
func NewAuthzAuditLogService(repo *repository.AuthzAuditLogRepository) *AuthzAuditLogService {
	return &AuthzAuditLogService{
		repo: repo,
	}
}

func newAuditEntry(ctx context.Context, action, tenantID string) *model.AuthzAuditLog {
	info := audit.RequestFromContext(ctx)
	return &model.AuthzAuditLog{
		ActionType: action,
		TenantID:   tenantID,
		Timestamp:  time.Now().UTC(),
		RequestID:  info.RequestID,
		ClientIP:   info.ClientIP,
		UserAgent:  info.UserAgent,
	}
}

// LogPermissionCheck logs a role check and its outcome
func (s *AuthzAuditLogService) LogPermissionCheck(
	ctx context.Context,
	tenantID string,
	subject model.Subject,
	permission string,
	object model.Entity,
	result bool,
	contextData map[string]interface{},
) error {
	log := newAuditEntry(ctx, model.ActionPermissionCheck, tenantID)
	log.Result = &result
	log.EntityType = object.Type
	log.EntityID = object.ID
	log.SubjectType = subject.Type
	log.SubjectID = subject.ID
	log.Permission = permission
	log.Context = model.JSONMap(contextData)

	return s.repo.Create(ctx, log)
}

// LogTenantMismatch logs a request for a record that lives in another tenant
func (s *AuthzAuditLogService) LogTenantMismatch(
	ctx context.Context,
	tenantID string,
	subject model.Subject,
	object model.Entity,
) error {
	denied := false
	log := newAuditEntry(ctx, model.ActionTenantMismatch, tenantID)
	log.Result = &denied
	log.EntityType = object.Type
	log.EntityID = object.ID
	log.SubjectType = subject.Type
	log.SubjectID = subject.ID

	return s.repo.Create(ctx, log)
}

// LogLedgerChange logs a membership, invite or ownership change
func (s *AuthzAuditLogService) LogLedgerChange(
	ctx context.Context,
	action string,
	tenantID string,
	actor model.Subject,
	object model.Entity,
	contextData map[string]interface{},
) error {
	ok := true
	log := newAuditEntry(ctx, action, tenantID)
	log.Result = &ok
	log.EntityType = object.Type
	log.EntityID = object.ID
	log.SubjectType = actor.Type
	log.SubjectID = actor.ID
	log.Context = model.JSONMap(contextData)

	return s.repo.Create(ctx, log)
}

// LogStageTransition logs a bid stage moving between states
func (s *AuthzAuditLogService) LogStageTransition(
	ctx context.Context,
	tenantID string,
	actor model.Subject,
	bid model.Entity,
	stage string,
	transition string,
) error {
	ok := true
	log := newAuditEntry(ctx, model.ActionStageTransition, tenantID)
	log.Result = &ok
	log.EntityType = bid.Type
	log.EntityID = bid.ID
	log.SubjectType = actor.Type
	log.SubjectID = actor.ID
	log.Relation = stage
	log.Permission = transition

	return s.repo.Create(ctx, log)
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *AuthzAuditLogService) GetAuditLogs(
	ctx context.Context,
	params repository.QueryParams,
) ([]model.AuthzAuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetAuditLogByID retrieves an audit log by ID
func (s *AuthzAuditLogService) GetAuditLogByID(
	ctx context.Context,
	id uuid.UUID,
) (*model.AuthzAuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log by ID: %w", err)
	}

	return log, nil
}

// recordAudit runs an audit write and logs a failure instead of failing the
// operation that was audited.
func recordAudit(ctx context.Context, err error) {
	if err != nil {
		slog.WarnContext(ctx, "Failed to write audit log", "error", err)
	}
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
)

// TenantService resolves the active tenant of a request from the caller's
// memberships.
type TenantService struct {
	membershipRepo repository.MembershipRepositoryIface
}

func NewTenantService(membershipRepo repository.MembershipRepositoryIface) *TenantService {
	return &TenantService{membershipRepo: membershipRepo}
}

// Resolve picks the membership named by hint, a tenant id or company id, when
// it is one of the user's active memberships. Otherwise the most recently
// accepted active membership wins. A user without any active membership gets
// domain.ErrNoActiveTenant.
func (s *TenantService) Resolve(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error) {
	memberships, err := s.membershipRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, domain.ErrNoActiveTenant
	}

	if hint != "" {
		if m := matchHint(memberships, hint); m != nil {
			return tenantContext(m), nil
		}
		slog.DebugContext(ctx, "Ignoring tenant hint without membership", "userID", userID, "hint", hint)
	}
	return tenantContext(memberships[0]), nil
}

// Switch resolves target strictly: it must name one of the user's active
// memberships.
func (s *TenantService) Switch(ctx context.Context, userID uuid.UUID, target string) (*model.TenantContext, error) {
	if target == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}
	memberships, err := s.membershipRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	m := matchHint(memberships, target)
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return tenantContext(m), nil
}

func matchHint(memberships []*model.Membership, hint string) *model.Membership {
	companyID, idErr := uuid.Parse(hint)
	for _, m := range memberships {
		if m.TenantID == hint || (idErr == nil && m.CompanyID == companyID) {
			return m
		}
	}
	return nil
}

// tenantContext builds the request scope for m. Platform roles only count
// inside the operator company.
func tenantContext(m *model.Membership) *model.TenantContext {
	tc := &model.TenantContext{
		UserID:       m.UserID,
		MembershipID: m.ID,
		TenantID:     m.TenantID,
		CompanyID:    m.CompanyID,
		CompanyRole:  m.CompanyRole,
	}
	if m.Company != nil {
		tc.CompanyName = m.Company.Name
		if m.Company.IsInternal {
			tc.IsOperator = true
			tc.PlatformRole = m.PlatformRole
		}
	}
	return tc
}

// scopedErr audits lookups that hit a record of another tenant and returns
// err unchanged, so the caller still answers with a plain not found.
func scopedErr(ctx context.Context, auditLog audit.Logger, tc *model.TenantContext, entityType string, id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrTenantMismatch) {
		metrics.AuthzDenialsTotal.WithLabelValues("tenant_mismatch").Inc()
		slog.WarnContext(ctx, "Cross-tenant access refused", "entity", entityType, "id", id, "tenantID", tc.TenantID, "userID", tc.UserID)
		recordAudit(ctx, auditLog.LogTenantMismatch(ctx, tc.TenantID, model.UserSubject(tc.UserID),
			model.Entity{Type: entityType, ID: id.String()}))
	}
	return err
}

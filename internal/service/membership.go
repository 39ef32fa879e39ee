package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/validation"
)

// platformAdminRank places operator admins above every company role.
const platformAdminRank = 4

// MembershipService is the membership ledger: the single place role checks
// and role changes are decided.
type MembershipService struct {
	repo     repository.MembershipRepositoryIface
	auditLog audit.Logger
	validate *validator.Validate
}

func NewMembershipService(repo repository.MembershipRepositoryIface, auditLog audit.Logger) *MembershipService {
	return &MembershipService{
		repo:     repo,
		auditLog: auditLog,
		validate: validation.New(),
	}
}

// HasCompanyRole reports whether the user holds an active membership in the
// company ranked at least min.
func (s *MembershipService) HasCompanyRole(ctx context.Context, userID, companyID uuid.UUID, min model.CompanyRole) (bool, error) {
	m, err := s.repo.FindByUserAndCompany(ctx, userID, companyID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.IsActive && m.CompanyRole.AtLeast(min), nil
}

// HasPlatformRole reports whether the user holds at least min through an
// active membership in the operator company.
func (s *MembershipService) HasPlatformRole(ctx context.Context, userID uuid.UUID, min model.PlatformRole) (bool, error) {
	m, err := s.repo.FindOperatorMembership(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return model.HasPlatformRole(m.PlatformRole, min), nil
}

// actorRank is the caller's rank for ledger changes in the active company.
func actorRank(tc *model.TenantContext) int {
	if tc.HasPlatformRole(model.PlatformRoleAdmin) {
		return platformAdminRank
	}
	return tc.CompanyRole.Rank()
}

// ListMembers returns the company's memberships. Inactive ones are included
// for admins only.
func (s *MembershipService) ListMembers(ctx context.Context, tc *model.TenantContext, includeInactive bool) ([]*model.Membership, error) {
	if !tc.HasCompanyRole(model.CompanyRoleViewer) {
		return nil, domain.ErrInsufficientRole
	}
	activeOnly := !(includeInactive && tc.HasCompanyRole(model.CompanyRoleAdmin))
	return s.repo.FindByCompany(ctx, tc.CompanyID, activeOnly)
}

type UpdateMemberInput struct {
	CompanyRole  *model.CompanyRole  `json:"company_role" validate:"omitempty,oneof=viewer member admin owner"`
	PlatformRole *model.PlatformRole `json:"platform_role" validate:"omitempty,oneof=viewer support admin super_admin"`
	IsActive     *bool               `json:"is_active"`
	Reason       *string             `json:"reason" validate:"omitempty,max=500"`
}

// loadTarget returns a membership of the active company. Memberships of
// other companies are reported as a tenant mismatch.
func (s *MembershipService) loadTarget(ctx context.Context, tc *model.TenantContext, id uuid.UUID) (*model.Membership, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.CompanyID != tc.CompanyID {
		return nil, scopedErr(ctx, s.auditLog, tc, "membership", id, domain.ErrTenantMismatch)
	}
	return target, nil
}

// authorizeChanges applies the ledger rules: the actor must outrank both the
// target's current role and any new role. Users may lower their own role or
// leave. Changes to other members need admin or higher. Platform roles are
// set by platform admins on operator memberships.
func authorizeChanges(tc *model.TenantContext, target *model.Membership, changes model.MembershipChanges) error {
	rank := actorRank(tc)
	self := target.UserID == tc.UserID

	if !self && rank < model.CompanyRoleAdmin.Rank() {
		return domain.ErrInsufficientRole
	}

	if changes.PlatformRole != nil {
		if !tc.HasPlatformRole(model.PlatformRoleAdmin) {
			return domain.ErrInsufficientRole
		}
		if !tc.HasPlatformRole(model.PlatformRoleSuperAdmin) && changes.PlatformRole.Rank() >= model.PlatformRoleAdmin.Rank() {
			return domain.ErrInsufficientRole
		}
	}

	if changes.CompanyRole != nil && *changes.CompanyRole != target.CompanyRole {
		selfDemotion := self && changes.CompanyRole.Rank() < target.CompanyRole.Rank()
		if !selfDemotion && (rank <= target.CompanyRole.Rank() || rank <= changes.CompanyRole.Rank()) {
			return domain.ErrInsufficientRole
		}
	}

	if changes.IsActive != nil && *changes.IsActive != target.IsActive {
		leaving := self && !*changes.IsActive
		if !leaving && rank <= target.CompanyRole.Rank() {
			return domain.ErrInsufficientRole
		}
	}

	return nil
}

// UpdateMember changes a member's role or active flag. Removing the last
// active owner is refused with domain.ErrSoleOwner.
func (s *MembershipService) UpdateMember(ctx context.Context, tc *model.TenantContext, id uuid.UUID, input UpdateMemberInput) (*model.Membership, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Translate(err)
	}
	changes := model.MembershipChanges{
		CompanyRole:  input.CompanyRole,
		PlatformRole: input.PlatformRole,
		IsActive:     input.IsActive,
	}
	return s.apply(ctx, tc, id, changes, input.Reason)
}

// Deactivate removes a member from the company without deleting the row.
func (s *MembershipService) Deactivate(ctx context.Context, tc *model.TenantContext, id uuid.UUID, reason *string) (*model.Membership, error) {
	inactive := false
	return s.apply(ctx, tc, id, model.MembershipChanges{IsActive: &inactive}, reason)
}

func (s *MembershipService) apply(ctx context.Context, tc *model.TenantContext, id uuid.UUID, changes model.MembershipChanges, reason *string) (*model.Membership, error) {
	target, err := s.loadTarget(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeChanges(tc, target, changes); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
		recordAudit(ctx, s.auditLog.LogPermissionCheck(ctx, tc.TenantID, model.UserSubject(tc.UserID), "membership.update",
			model.Entity{Type: "membership", ID: id.String()}, false, changesContext(changes)))
		return nil, err
	}

	// Checked here for a clear answer; the repository re-checks under lock.
	if changes.RemovesOwner(target) {
		owners, err := s.repo.CountActiveOwners(ctx, target.CompanyID)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			metrics.AuthzDenialsTotal.WithLabelValues("sole_owner").Inc()
			return nil, domain.ErrSoleOwner
		}
	}

	updated, err := s.repo.ApplyChanges(ctx, id, changes, tc.UserID, reason)
	if err != nil {
		if errors.Is(err, domain.ErrSoleOwner) {
			metrics.AuthzDenialsTotal.WithLabelValues("sole_owner").Inc()
		}
		return nil, err
	}

	action := model.ActionMembershipUpdate
	if changes.IsActive != nil && !*changes.IsActive {
		action = model.ActionMembershipRevoke
	}
	slog.InfoContext(ctx, "Membership changed", "membershipID", id, "action", action, "userID", tc.UserID, "tenantID", tc.TenantID)
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, action, tc.TenantID, model.UserSubject(tc.UserID),
		model.Entity{Type: "membership", ID: id.String()}, changesContext(changes)))
	return updated, nil
}

func changesContext(c model.MembershipChanges) map[string]interface{} {
	out := map[string]interface{}{}
	if c.CompanyRole != nil {
		out["company_role"] = *c.CompanyRole
	}
	if c.PlatformRole != nil {
		out["platform_role"] = *c.PlatformRole
	}
	if c.IsActive != nil {
		out["is_active"] = *c.IsActive
	}
	return out
}

type TransferOwnershipInput struct {
	NewOwnerUserID uuid.UUID `json:"new_owner_user_id" validate:"required"`
}

// TransferOwnership hands the caller's owner seat to another active member.
// The caller becomes admin. Both writes happen in one transaction.
func (s *MembershipService) TransferOwnership(ctx context.Context, tc *model.TenantContext, input TransferOwnershipInput) error {
	if err := s.validate.Struct(input); err != nil {
		return validation.Translate(err)
	}
	if tc.CompanyRole != model.CompanyRoleOwner {
		return domain.ErrInsufficientRole
	}
	if input.NewOwnerUserID == tc.UserID {
		return domain.NewValidationError("new_owner_user_id", "must be another member")
	}

	if err := s.repo.TransferOwnership(ctx, tc.CompanyID, tc.UserID, input.NewOwnerUserID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Ownership transferred", "tenantID", tc.TenantID, "from", tc.UserID, "to", input.NewOwnerUserID)
	recordAudit(ctx, s.auditLog.LogLedgerChange(ctx, model.ActionOwnerTransfer, tc.TenantID, model.UserSubject(tc.UserID),
		model.Entity{Type: "user", ID: input.NewOwnerUserID.String()}, nil))
	return nil
}

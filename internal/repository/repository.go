package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

const pgUniqueViolation = "23505"

// conflictFields maps unique constraints onto the input field a caller can
// fix.
var conflictFields = map[string]string{
	"idx_users_external_id":              "external_id",
	"idx_users_email":                    "email",
	"idx_companies_name":                 "name",
	"idx_companies_tenant_id":            "tenant_id",
	"idx_memberships_user_company":       "membership",
	"idx_membership_invites_token_hash":  "token",
	"idx_client_companies_tenant_name":   "name",
	"idx_tenders_tenant_ref":             "external_ref",
	"idx_knowledge_documents_tenant_key": "storage_key",
	"idx_bid_stages_bid_stage":           "stage",
}

// translate turns driver errors into domain errors. Unique violations become
// a *domain.ConflictError naming the field; record-not-found becomes
// notFound. Anything else is wrapped with op.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		field, ok := conflictFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		return &domain.ConflictError{Field: field}
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) || isDomainError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isDomainError reports whether err already carries a domain sentinel and
// should pass through a transaction unchanged.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrForbidden,
		domain.ErrInvalidInput,
		domain.ErrStaleState,
		domain.ErrBidLocked,
		domain.ErrActiveBids,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err is a conflict on the given field.
func IsUniqueViolation(err error, field string) bool {
	var conflict *domain.ConflictError
	return errors.As(err, &conflict) && conflict.Field == field
}

// findScoped loads a tenant-owned row by id. A row that exists under another
// tenant is reported as domain.ErrTenantMismatch so callers can log it while
// still answering with a plain not found.
func findScoped[T any](ctx context.Context, db *gorm.DB, tenantID string, id uuid.UUID, dest *T, scopes ...func(*gorm.DB) *gorm.DB) error {
	err := db.WithContext(ctx).
		Scopes(scopes...).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("finding record: %w", err)
	}
	return missingScoped[T](ctx, db, id)
}

// missingScoped explains a tenant-scoped read or write that matched no row:
// domain.ErrTenantMismatch when the id belongs to another tenant, otherwise
// domain.ErrNotFound.
func missingScoped[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var owners []string
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Pluck("tenant_id", &owners).Error; err != nil {
		return fmt.Errorf("checking record owner: %w", err)
	}
	if len(owners) > 0 {
		return domain.ErrTenantMismatch
	}
	return domain.ErrNotFound
}

// Page bounds a list query.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db.Limit(limit)
}

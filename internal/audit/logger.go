package audit

import (
	"context"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/tenderdesk/tenderdesk/internal/model"
)

// Logger defines the interface for auditing authorization decisions and
// changes to the membership ledger and bid pipeline.
type Logger interface {
	// LogPermissionCheck logs a role check and its outcome
	LogPermissionCheck(
		ctx context.Context,
		tenantID string,
		subject model.Subject,
		permission string,
		object model.Entity,
		result bool,
		contextData map[string]interface{},
	) error

	// LogTenantMismatch logs an attempt to reach a record owned by another tenant
	LogTenantMismatch(
		ctx context.Context,
		tenantID string,
		subject model.Subject,
		object model.Entity,
	) error

	// LogLedgerChange logs a membership, invite or ownership change
	LogLedgerChange(
		ctx context.Context,
		action string,
		tenantID string,
		actor model.Subject,
		object model.Entity,
		contextData map[string]interface{},
	) error

	// LogStageTransition logs a bid stage moving between states
	LogStageTransition(
		ctx context.Context,
		tenantID string,
		actor model.Subject,
		bid model.Entity,
		stage string,
		transition string,
	) error
}

// RequestInfo identifies the HTTP request an audited action came from.
type RequestInfo struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

type requestInfoKey struct{}

// WithRequest stores the request metadata on ctx for audit entries written
// further down the call chain.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, RequestInfo{
		RequestID: chmw.GetReqID(ctx),
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
}

func RequestFromContext(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	if info.RequestID == "" {
		info.RequestID = chmw.GetReqID(ctx)
	}
	return info
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

func (NoOpLogger) LogPermissionCheck(context.Context, string, model.Subject, string, model.Entity, bool, map[string]interface{}) error {
	return nil
}

func (NoOpLogger) LogTenantMismatch(context.Context, string, model.Subject, model.Entity) error {
	return nil
}

func (NoOpLogger) LogLedgerChange(context.Context, string, string, model.Subject, model.Entity, map[string]interface{}) error {
	return nil
}

func (NoOpLogger) LogStageTransition(context.Context, string, model.Subject, model.Entity, string, string) error {
	return nil
}

package middleware

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/audit"
)

// AuthzAudit stores the request id, client address and user agent on the
// context so audit entries written by services can name their request.
func AuthzAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(audit.WithRequest(r.Context(), r)))
	})
}

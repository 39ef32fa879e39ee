package handler

import (
	"net/http"
	"strconv"

	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// AuthzAuditLogHandler serves the audit trail to platform staff
type AuthzAuditLogHandler struct {
	auditLogService *service.AuthzAuditLogService
}

// NewAuthzAuditLogHandler creates a new audit log handler
func NewAuthzAuditLogHandler(auditLogService *service.AuthzAuditLogService) *AuthzAuditLogHandler {
	return &AuthzAuditLogHandler{
		auditLogService: auditLogService,
	}
}

// GetAuditLogs lists audit entries across tenants, filtered by query parameters
func (h *AuthzAuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pageFromQuery(r)
	params := repository.QueryParams{
		ActionType:  q.Get("action_type"),
		TenantID:    q.Get("tenant_id"),
		EntityType:  q.Get("entity_type"),
		EntityID:    q.Get("entity_id"),
		SubjectType: q.Get("subject_type"),
		SubjectID:   q.Get("subject_id"),
		StartTime:   timeQuery(r, "start_time"),
		EndTime:     timeQuery(r, "end_time"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if result, err := strconv.ParseBool(q.Get("result")); err == nil {
		params.Result = &result
	}

	logs, total, err := h.auditLogService.GetAuditLogs(r.Context(), params)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, logs, total)
}

// GetAuditLogByID returns a single audit entry
func (h *AuthzAuditLogHandler) GetAuditLogByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	log, err := h.auditLogService.GetAuditLogByID(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, log)
}

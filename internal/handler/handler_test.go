package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/handler"
	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/mocks"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

const tenantID = "acme-bv-x1y2z3"

// withScope injects the user and tenant the real middleware would resolve.
func withScope(user *model.User, tc *model.TenantContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithUser(r.Context(), user)
			if tc != nil {
				ctx = middleware.WithTenant(ctx, tc)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type bidFixture struct {
	bids   *mocks.MockBidRepositoryIface
	audit  *mocks.MockLogger
	router http.Handler
}

func newBidFixture(t *testing.T) *bidFixture {
	ctrl := gomock.NewController(t)
	f := &bidFixture{
		bids:  mocks.NewMockBidRepositoryIface(ctrl),
		audit: mocks.NewMockLogger(ctrl),
	}
	svc := service.NewBidService(
		f.bids,
		mocks.NewMockTenderRepositoryIface(ctrl),
		mocks.NewMockClientCompanyRepositoryIface(ctrl),
		mocks.NewMockKnowledgeRepositoryIface(ctrl),
		mocks.NewMockMembershipRepositoryIface(ctrl),
		mocks.NewMockCompleter(ctrl),
		f.audit,
		&config.Config{MinRejectionReason: 10},
	)

	user := &model.User{ID: uuid.New(), Email: "jan@acme.nl", EmailVerified: true}
	tc := &model.TenantContext{
		UserID:      user.ID,
		TenantID:    tenantID,
		CompanyID:   uuid.New(),
		CompanyRole: model.CompanyRoleMember,
	}

	h := handler.NewBidHandler(svc)
	r := chi.NewRouter()
	r.Use(withScope(user, tc))
	r.Get("/bids/{id}", h.Get)
	r.Post("/bids/{id}/stages/{stage}/reject", h.Reject)
	f.router = r
	return f
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBidGetHidesOtherTenants(t *testing.T) {
	f := newBidFixture(t)
	foreign := uuid.New()
	missing := uuid.New()

	f.bids.EXPECT().FindByID(gomock.Any(), tenantID, foreign).Return(nil, domain.ErrTenantMismatch)
	f.bids.EXPECT().FindByID(gomock.Any(), tenantID, missing).Return(nil, domain.ErrNotFound)
	f.audit.EXPECT().
		LogTenantMismatch(gomock.Any(), tenantID, gomock.Any(), model.Entity{Type: "bid", ID: foreign.String()}).
		Return(nil)

	crossTenant := serve(f.router, http.MethodGet, "/bids/"+foreign.String(), "")
	realMiss := serve(f.router, http.MethodGet, "/bids/"+missing.String(), "")

	assert.Equal(t, http.StatusNotFound, crossTenant.Code)
	assert.Equal(t, realMiss.Code, crossTenant.Code)
	assert.Equal(t, realMiss.Body.String(), crossTenant.Body.String())
}

func TestBidGetRejectsMalformedID(t *testing.T) {
	f := newBidFixture(t)

	w := serve(f.router, http.MethodGet, "/bids/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestBidRejectRefusesUnknownFields(t *testing.T) {
	f := newBidFixture(t)

	w := serve(f.router, http.MethodPost, "/bids/"+uuid.NewString()+"/stages/compliance/reject",
		`{"reason":"Pricing section is incomplete","tenant_id":"other-tenant"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantSwitch(t *testing.T) {
	userID := uuid.New()
	acme := &model.Membership{ID: uuid.New(), UserID: userID, CompanyID: uuid.New(), TenantID: tenantID, CompanyRole: model.CompanyRoleOwner, IsActive: true}
	bouw := &model.Membership{ID: uuid.New(), UserID: userID, CompanyID: uuid.New(), TenantID: "bouw-nl-a9b8c7", CompanyRole: model.CompanyRoleViewer, IsActive: true}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCookie string
	}{
		{"by tenant id", `{"tenant_id":"bouw-nl-a9b8c7"}`, http.StatusOK, "bouw-nl-a9b8c7"},
		{"by company id", `{"tenant_id":"` + acme.CompanyID.String() + `"}`, http.StatusOK, tenantID},
		{"not a member", `{"tenant_id":"rival-bv-000000"}`, http.StatusNotFound, ""},
		{"missing target", `{}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
			memberships.EXPECT().FindByUser(gomock.Any(), userID, true).Return([]*model.Membership{acme, bouw}, nil).AnyTimes()

			h := handler.NewTenantHandler(service.NewTenantService(memberships), true)
			r := chi.NewRouter()
			r.Use(withScope(&model.User{ID: userID}, nil))
			r.Post("/tenant/switch", h.Switch)

			w := serve(r, http.MethodPost, "/tenant/switch", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			cookies := w.Result().Cookies()
			if tt.wantCookie == "" {
				assert.Empty(t, cookies)
				return
			}
			require.Len(t, cookies, 1)
			assert.Equal(t, middleware.ActiveCompanyCookie, cookies[0].Name)
			assert.Equal(t, tt.wantCookie, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
		})
	}
}

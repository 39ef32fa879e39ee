package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tenderdesk/tenderdesk/internal/api"
	"github.com/tenderdesk/tenderdesk/internal/audit"
	"github.com/tenderdesk/tenderdesk/internal/auth"
	"github.com/tenderdesk/tenderdesk/internal/handler"
	"github.com/tenderdesk/tenderdesk/internal/mocks"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type userFunc func(ctx context.Context, p auth.Principal) (*model.User, error)

func (f userFunc) Authenticate(ctx context.Context, p auth.Principal) (*model.User, error) {
	return f(ctx, p)
}

type resolverFunc func(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error)

func (f resolverFunc) Resolve(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error) {
	return f(ctx, userID, hint)
}

type routerFixture struct {
	memberships *mocks.MockMembershipRepositoryIface
	tc          *model.TenantContext
	token       string
	router      http.Handler
}

// newRouterFixture serves the full router for a caller holding role in one
// company.
func newRouterFixture(t *testing.T, role model.CompanyRole) *routerFixture {
	t.Helper()
	tokens := auth.NewTokenManager("router-test-secret", "tenderdesk", time.Hour)
	token, err := tokens.Generate(auth.Principal{ExternalID: "ext-jan", Email: "jan@acme.nl", EmailVerified: true})
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), ExternalID: "ext-jan", Email: "jan@acme.nl", EmailVerified: true}
	tc := &model.TenantContext{
		UserID:       user.ID,
		MembershipID: uuid.New(),
		TenantID:     "acme-bv-x1y2z3",
		CompanyID:    uuid.New(),
		CompanyRole:  role,
	}

	memberships := mocks.NewMockMembershipRepositoryIface(gomock.NewController(t))
	ledger := service.NewMembershipService(memberships, audit.NoOpLogger{})

	router := api.NewRouter(api.Deps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: tokens,
		Users: userFunc(func(context.Context, auth.Principal) (*model.User, error) {
			return user, nil
		}),
		Tenants: resolverFunc(func(context.Context, uuid.UUID, string) (*model.TenantContext, error) {
			return tc, nil
		}),
		Handlers: api.Handlers{
			Company: handler.NewCompanyHandler(nil, ledger),
		},
	})

	return &routerFixture{memberships: memberships, tc: tc, token: token, router: router}
}

func (f *routerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) own() *model.Membership {
	return &model.Membership{
		ID:          f.tc.MembershipID,
		UserID:      f.tc.UserID,
		CompanyID:   f.tc.CompanyID,
		TenantID:    f.tc.TenantID,
		CompanyRole: f.tc.CompanyRole,
		IsActive:    true,
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestMemberCanLeaveCompany(t *testing.T) {
	f := newRouterFixture(t, model.CompanyRoleMember)
	self := f.own()
	left := *self
	left.IsActive = false

	f.memberships.EXPECT().FindByID(gomock.Any(), self.ID).Return(self, nil)
	f.memberships.EXPECT().
		ApplyChanges(gomock.Any(), self.ID, model.MembershipChanges{IsActive: boolRef(false)}, f.tc.UserID, nil).
		Return(&left, nil)

	w := f.do(http.MethodDelete, "/api/company/members/"+self.ID.String(), "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}

func TestMemberCanStepDown(t *testing.T) {
	f := newRouterFixture(t, model.CompanyRoleMember)
	self := f.own()
	lowered := *self
	lowered.CompanyRole = model.CompanyRoleViewer

	f.memberships.EXPECT().FindByID(gomock.Any(), self.ID).Return(self, nil)
	f.memberships.EXPECT().ApplyChanges(gomock.Any(), self.ID, gomock.Any(), f.tc.UserID, nil).Return(&lowered, nil)

	w := f.do(http.MethodPatch, "/api/company/members/"+self.ID.String(), `{"company_role":"viewer"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"company_role":"viewer"`)
}

func TestMemberCannotRemoveOthers(t *testing.T) {
	f := newRouterFixture(t, model.CompanyRoleMember)
	other := f.own()
	other.ID = uuid.New()
	other.UserID = uuid.New()

	f.memberships.EXPECT().FindByID(gomock.Any(), other.ID).Return(other, nil)

	w := f.do(http.MethodDelete, "/api/company/members/"+other.ID.String(), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestMemberCannotLeaveAnotherCompany(t *testing.T) {
	f := newRouterFixture(t, model.CompanyRoleMember)
	foreign := f.own()
	foreign.ID = uuid.New()
	foreign.CompanyID = uuid.New()
	foreign.TenantID = "rival-bv-000000"

	f.memberships.EXPECT().FindByID(gomock.Any(), foreign.ID).Return(foreign, nil)

	w := f.do(http.MethodDelete, "/api/company/members/"+foreign.ID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestAdminRoutesStayGuarded(t *testing.T) {
	f := newRouterFixture(t, model.CompanyRoleMember)

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPatch, "/api/company/settings", `{"allowed_email_domains":["acme.nl"]}`},
		{http.MethodPost, "/api/company/invites", `{"email":"piet@acme.nl","role":"member"}`},
		{http.MethodPost, "/api/company/ownership/transfer", `{"new_owner_user_id":"` + uuid.NewString() + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := f.do(tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "FORBIDDEN", errorCode(t, w))
		})
	}
}

func boolRef(b bool) *bool { return &b }

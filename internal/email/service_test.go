package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates(t *testing.T) {
	s := &Service{Templates: make(map[string]*Template)}
	require.NoError(t, s.loadTemplates())

	assert.Contains(t, s.Templates, "membership_invite")
	assert.Contains(t, s.Templates, "domain_join_request")
}

func TestRenderInviteTemplate(t *testing.T) {
	s := &Service{Templates: make(map[string]*Template)}
	require.NoError(t, s.loadTemplates())

	data := struct {
		CompanyName string
		InviterName string
		Role        string
		AcceptLink  string
		ExpiresAt   time.Time
	}{
		CompanyName: "Acme <BV>",
		InviterName: "Jan",
		Role:        "member",
		AcceptLink:  "https://app.tenderdesk.nl/invites/abc",
		ExpiresAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	html, text, err := s.renderTemplate("membership_invite", data)
	require.NoError(t, err)

	assert.Contains(t, html, "Acme &lt;BV&gt;")
	assert.Contains(t, text, "Acme <BV>")
	assert.Contains(t, text, "https://app.tenderdesk.nl/invites/abc")
	assert.True(t, strings.Contains(text, "01-03-2026 12:00"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	s := &Service{Templates: make(map[string]*Template)}
	_, _, err := s.renderTemplate("missing", nil)
	assert.Error(t, err)
}

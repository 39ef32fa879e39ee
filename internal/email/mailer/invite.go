// internal/email/mailer/invite.go
package mailer

import (
	"context"
	"time"

	"github.com/tenderdesk/tenderdesk/internal/email"
)

const TemplateMembershipInvite = "membership_invite"

// InviteTemplateData contains data for the membership invite template
type InviteTemplateData struct {
	CompanyName string
	InviterName string
	Role        string
	AcceptLink  string
	ExpiresAt   time.Time
}

// SendInviteEmail sends a membership invite carrying the accept link.
func SendInviteEmail(ctx context.Context, s email.Sender, to string, data InviteTemplateData) error {
	return s.SendEmail(ctx, email.EmailData{
		To:           []string{to},
		Subject:      "Je bent uitgenodigd voor " + data.CompanyName + " op TenderDesk",
		TemplateName: TemplateMembershipInvite,
		TemplateData: data,
	})
}

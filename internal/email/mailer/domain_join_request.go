package mailer

import (
	"context"

	"github.com/tenderdesk/tenderdesk/internal/email"
)

const TemplateDomainJoinRequest = "domain_join_request"

// DomainJoinTemplateData contains data for the domain join request template
type DomainJoinTemplateData struct {
	CompanyName    string
	OwnerName      string
	RequesterName  string
	RequesterEmail string
	MembersLink    string
}

// SendDomainJoinRequest notifies a company owner that someone from an
// allowed email domain asked to join.
func SendDomainJoinRequest(ctx context.Context, s email.Sender, to string, data DomainJoinTemplateData) error {
	return s.SendEmail(ctx, email.EmailData{
		To:           []string{to},
		Subject:      data.RequesterName + " vraagt toegang tot " + data.CompanyName,
		TemplateName: TemplateDomainJoinRequest,
		TemplateData: data,
	})
}

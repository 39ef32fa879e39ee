package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/tenderdesk/tenderdesk/internal/config"
)

const (
	graphBaseURL = "https://graph.microsoft.com/v1.0"
	graphScope   = "https://graph.microsoft.com/.default"
)

// newGraphClient returns an HTTP client that attaches an app-only Microsoft
// Graph token. The token source caches the token and refreshes it on expiry.
func newGraphClient(ctx context.Context, cfg *config.Config) *http.Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", url.PathEscape(cfg.Graph.TenantID)),
		Scopes:       []string{graphScope},
	}
	return cc.Client(ctx)
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type graphMessage struct {
	Message struct {
		Subject string `json:"subject"`
		Body    struct {
			ContentType string `json:"contentType"`
			Content     string `json:"content"`
		} `json:"body"`
		ToRecipients []graphRecipient `json:"toRecipients"`
	} `json:"message"`
	SaveToSentItems bool `json:"saveToSentItems"`
}

// sendWithGraph sends an email from the configured mailbox through the
// Microsoft Graph sendMail action.
func (s *Service) sendWithGraph(ctx context.Context, data EmailData, htmlContent string) error {
	var msg graphMessage
	msg.Message.Subject = data.Subject
	msg.Message.Body.ContentType = "HTML"
	msg.Message.Body.Content = htmlContent
	for _, to := range data.To {
		var r graphRecipient
		r.EmailAddress.Address = to
		msg.Message.ToRecipients = append(msg.Message.ToRecipients, r)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding graph message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", graphBaseURL, url.PathEscape(s.config.Graph.Sender))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.graphClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email via Graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected Graph status code: %d, body: %s", resp.StatusCode, detail)
	}

	return nil
}

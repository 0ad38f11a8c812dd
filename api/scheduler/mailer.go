package scheduler

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer sends escalation emails to dispatch
type Mailer interface {
	Send(ctx context.Context, subject, plainText, htmlContent string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

// NewSendgridMailer returns a mailer for the dispatch inbox, or nil when
// either the api key or the recipient is not configured.
func NewSendgridMailer(apiKey, from, to string) Mailer {
	if apiKey == "" || to == "" {
		return nil
	}
	return &sendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Lifeline Alerts", from),
		to:     mail.NewEmail("Dispatch", to),
	}
}

func (m *sendgridMailer) Send(ctx context.Context, subject, plainText, htmlContent string) error {
	message := mail.NewSingleEmail(m.from, subject, m.to, plainText, htmlContent)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// Package email dispatches approved reply drafts to customers via SendGrid.
// Dispatch is best effort and optional: without an API key the send action
// only records the state transition in the store.
package email

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Dispatcher sends reply drafts through SendGrid.
type Dispatcher struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewDispatcher creates a new dispatcher instance
func NewDispatcher(apiKey, fromEmail, fromName string) *Dispatcher {
	if fromName == "" {
		fromName = "Support Team"
	}
	return &Dispatcher{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Enabled reports whether outbound dispatch is configured.
func (d *Dispatcher) Enabled() bool {
	return d.apiKey != ""
}

// SendReply emails a reply draft back to the original sender.
func (d *Dispatcher) SendReply(toEmail, subject, content string) error {
	if d.apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}

	from := mail.NewEmail(d.fromName, d.fromEmail)
	to := mail.NewEmail(localPart(toEmail), toEmail)

	replySubject := subject
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		replySubject = "Re: " + subject
	}

	message := mail.NewSingleEmail(from, replySubject, to, content, content)

	client := sendgrid.NewSendClient(d.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// localPart returns the part of an email address before the @.
func localPart(address string) string {
	if at := strings.Index(address, "@"); at > 0 {
		return address[:at]
	}
	return address
}

package std

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// EmailConfig configures the email tool.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Message is an outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers email. The SMTP implementation is the production path;
// tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail over SMTP with plain auth.
type SMTPSender struct {
	cfg EmailConfig
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(cfg EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return smtp.SendMail(addr, auth, s.cfg.From, msg.To, []byte(b.String()))
}

// EmailTool sends an email through the configured Sender.
type EmailTool struct {
	sender Sender
}

// NewEmailTool creates the email tool.
func NewEmailTool(sender Sender) *EmailTool {
	return &EmailTool{sender: sender}
}

// Declaration implements tooldispatch.Tool.
func (t *EmailTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "send_email",
		Description: "Send an email to one or more recipients.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"to": {
					Type:        "array",
					Description: "Recipient email addresses",
					Items:       &tooldispatch.Schema{Type: "string", Format: "email"},
				},
				"subject": {Type: "string", Description: "Subject line"},
				"body":    {Type: "string", Description: "Plain-text message body"},
			},
			Required: []string{"to", "subject", "body"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *EmailTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}
	if t.sender == nil {
		return nil, fmt.Errorf("email sender is not configured")
	}

	rawTo, _ := args["to"].([]interface{})
	to := make([]string, 0, len(rawTo))
	for _, v := range rawTo {
		if s, ok := v.(string); ok && s != "" {
			to = append(to, s)
		}
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	subject, _ := args["subject"].(string)
	body, _ := args["body"].(string)

	if err := t.sender.Send(ctx, Message{To: to, Subject: subject, Body: body}); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return fmt.Sprintf("Email sent to %s", strings.Join(to, ", ")), nil
}

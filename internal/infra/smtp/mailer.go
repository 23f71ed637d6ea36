// Package smtp delivers outbound email through an SMTP relay.
package smtp

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"unishift/internal/domain"
)

// Options configures the SMTP relay.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends HTML email. Each Send opens its own connection.
type Mailer struct {
	client *gomail.Client
	from   string
}

// NewMailer validates opts and prepares a client. STARTTLS is used when the
// relay offers it.
func NewMailer(opts Options) (*Mailer, error) {
	if opts.Host == "" {
		return nil, errors.New("smtp: host is required")
	}
	if opts.From == "" {
		return nil, errors.New("smtp: from address is required")
	}
	if opts.Port == 0 {
		opts.Port = 587
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}
	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: new client: %w", err)
	}
	return &Mailer{client: client, from: opts.From}, nil
}

// Send delivers email.
func (m *Mailer) Send(ctx context.Context, email domain.Email) error {
	msg, err := buildMessage(m.from, email)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send to %s: %w", email.To, err)
	}
	return nil
}

func buildMessage(from string, email domain.Email) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("smtp: from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("smtp: recipient address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, email.HTMLBody)
	return msg, nil
}

var _ domain.Mailer = (*Mailer)(nil)

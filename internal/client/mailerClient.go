package client

import (
	"context"
	"errors"

	"webshop-backend/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// ErrMailerNotConfigured is reported when SMTP settings are incomplete.
// Callers treat it as a non-delivery, not a fault.
var ErrMailerNotConfigured = errors.New("smtp transport not configured")

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

type smtpMailerImpl struct {
	dialer  *gomail.Dialer
	from    string
	replyTo string
}

func NewSMTPMailer(cfg *config.SMTP) Mailer {
	if cfg.Host == "" || cfg.Port == 0 || cfg.User == "" || cfg.Pass == "" || cfg.From == "" {
		return &smtpMailerImpl{}
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	dialer.SSL = cfg.Secure || cfg.Port == 465

	return &smtpMailerImpl{
		dialer:  dialer,
		from:    cfg.From,
		replyTo: cfg.ReplyTo,
	}
}

func (m *smtpMailerImpl) Send(_ context.Context, email *Email) error {
	if m.dialer == nil {
		return ErrMailerNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	if m.replyTo != "" {
		msg.SetHeader("Reply-To", m.replyTo)
	}
	msg.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		msg.AddAlternative("text/html", email.HTML)
	}

	return m.dialer.DialAndSend(msg)
}

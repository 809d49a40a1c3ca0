package notification

import (
	"fmt"

	"donation-hub/internal/config"

	"gopkg.in/gomail.v2"
)

// Dispatcher sends transactional messages. Delivery is best-effort: callers
// must treat a returned error as a degraded result, never as a reason to
// roll back state.
type Dispatcher interface {
	Send(to, subject, body string) error
}

// Mailer is an SMTP-backed Dispatcher.
type Mailer struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg *config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("missing SMTP host")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("missing SMTP port")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("missing SMTP from address")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)

	return &Mailer{
		cfg:    cfg,
		dialer: dialer,
	}, nil
}

func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

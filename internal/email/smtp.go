package email

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/membership-management/internal"
	"gopkg.in/gomail.v2"
)

type SMTPSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *slog.Logger
}

func NewSMTPSender(cfg internal.SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (s *SMTPSender) Send(to, toName, subject, bodyText, bodyHTML string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", bodyText)
	if bodyHTML != "" {
		m.AddAlternative("text/html", bodyHTML)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

package utils

import (
	"fmt"

	"github.com/badoux/checkmail"
	"gopkg.in/gomail.v2"

	"leadhub/config"
)

// SendEmail delivers a plain-text message through the configured SMTP
// server. Used for test sends of contact templates.
func SendEmail(to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP is not configured")
	}
	if err := checkmail.ValidateFormat(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPUsername)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

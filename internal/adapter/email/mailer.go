package email

import (
	"fmt"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/config"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	SendPasswordReset(toEmail, toName, token string) error
}

type smtpSender struct {
	cfg config.SMTPConfig
	log logger.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) Sender {
	return &smtpSender{cfg: cfg, log: log}
}

func (s *smtpSender) SendPasswordReset(toEmail, toName, token string) error {
	if s.cfg.Host == "" || s.cfg.SenderEmail == "" {
		s.log.Warn("SMTP configuration is incomplete, password reset email not sent")
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Password reset request")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account.\n"+
			"Reset token: %s\n\nIf you did not request this, ignore this email.\n",
		toName, token))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.Errorf("failed to send password reset email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

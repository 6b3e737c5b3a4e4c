package mailer

import (
	"fmt"
	"net/smtp"

	"arka/internal/app/config"

	"github.com/sirupsen/logrus"
)

// Sender — то, что умеет отправить одно письмо. Реализации: SMTP и фейк в тестах.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer отправляет простые текстовые письма через SMTP (STARTTLS).
// Одна попытка, без ретраев: медленный SMTP напрямую тормозит запрос.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	from string
}

func NewSMTPMailer(cfg config.SMTPConfig, from string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, from: from}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	logrus.Infof("Email sent successfully to %s | Subject: %s", to, subject)
	return nil
}

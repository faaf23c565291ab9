package mailing

import (
	"Recipe-Share-Backend/internal/utils"
	"fmt"
	"gopkg.in/gomail.v2"
	"strconv"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}

	noopMailer struct{}
)

// NewMailer returns an SMTP mailer, or a mailer that drops every message when
// SMTP_HOST is not configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{config: config}
}

func (noopMailer) SendMail(string, string, string) error { return nil }

func (m *smtpMailer) message(toEmail, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		msg.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		msg.SetHeader("From", m.config.SMTPEmail)
	}
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)
	return dialer.DialAndSend(m.message(toEmail, subject, body))
}

func WelcomeMail(config MailConfig, username string) (string, string) {
	subject := "Welcome to Recipe Share"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready. Start sharing recipes at <a href=\"%s\">%s</a>.</p>",
		username, config.AppURL, config.AppURL,
	)
	return subject, body
}

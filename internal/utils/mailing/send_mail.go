package mailing

import (
	"fmt"
	"strconv"

	"foodloss-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

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

func NewMailer() Mailer {
	return &smtpMailer{config: LoadMailConfig()}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	if m.config.SMTPHost == "" {
		return fmt.Errorf("smtp host not configured")
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// VerificationMail renders the body of the address confirmation mail.
func VerificationMail(appURL, name, token string) (subject string, body string) {
	link := fmt.Sprintf("%s/api/auth/verify?token=%s", appURL, token)
	subject = "メールアドレスの確認"
	body = fmt.Sprintf(
		`<p>%s 様</p><p>以下のリンクからメールアドレスを確認してください。</p><p><a href="%s">%s</a></p>`,
		name, link, link,
	)
	return subject, body
}

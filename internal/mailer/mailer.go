package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers transactional mail.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendPasswordReset mails a reset link to the recipient.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	subject := "Reset your Ajurnie password"
	body := fmt.Sprintf(
		"We received a request to reset the password for your account.\r\n\r\n"+
			"Open the link below to choose a new password. The link expires in one hour.\r\n\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		resetURL,
	)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send password reset mail: %w", err)
	}
	return nil
}

// NoopMailer logs instead of sending. Used when SMTP is not configured,
// e.g. local development.
type NoopMailer struct{}

// SendPasswordReset logs the reset link.
func (NoopMailer) SendPasswordReset(to, resetURL string) error {
	log.Printf("mailer disabled, password reset for %s: %s", to, resetURL)
	return nil
}

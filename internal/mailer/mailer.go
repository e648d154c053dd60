package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer delivers password reset links to users.
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

// LogMailer writes the reset link to the server log instead of sending mail.
// This is the default when SMTP is not configured.
type LogMailer struct{}

// SendPasswordReset logs the reset link for an operator to relay.
func (LogMailer) SendPasswordReset(to, resetLink string) error {
	log.Printf("password reset requested for %s: %s", to, resetLink)
	return nil
}

// SMTPMailer sends plain-text mail over SMTP with PLAIN auth.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
}

// SendPasswordReset sends the reset link by email.
func (m *SMTPMailer) SendPasswordReset(to, resetLink string) error {
	if m.Host == "" || m.Port == "" || m.User == "" || m.Pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	body := "Hello,\r\n\r\n" +
		"A password reset was requested for your account. Open the link below to choose a new password. " +
		"The link is valid for one hour and can be used once.\r\n\r\n" +
		resetLink + "\r\n\r\n" +
		"If you did not request this, you can ignore this email.\r\n"

	msg := "From: " + m.User + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Reset your password\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.User, []string{to}, []byte(msg))
}

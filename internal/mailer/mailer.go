// Package mailer sends account-credential emails to bulk-created
// organization members over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Credentials is the content of one onboarding email.
type Credentials struct {
	Email            string
	Password         string
	Name             string
	OrganizationName string
}

// Mailer sends onboarding emails.
type Mailer interface {
	SendCredentials(creds Credentials) error
}

// SMTPConfig carries the server and sender settings.
type SMTPConfig struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

type smtpMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a Mailer for the given SMTP account. It validates
// eagerly so a misconfigured mailer fails at startup, not mid-batch.
func NewSMTPMailer(cfg SMTPConfig) (Mailer, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("SMTP host and port must be provided")
	}
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("SMTP username and password must be provided")
	}
	if cfg.Sender == "" {
		cfg.Sender = cfg.User
	}
	return &smtpMailer{cfg: cfg}, nil
}

// SendCredentials emails one member their login details. Failures are
// reported to the caller, which records them alongside the creations they
// belong to; a failed email never rolls back the created account.
func (m *smtpMailer) SendCredentials(creds Credentials) error {
	if creds.Email == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}

	subject := fmt.Sprintf("Welcome to GymVisa - Your Account Credentials for %s", creds.OrganizationName)
	body := credentialsHTML(creds)

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", creds.Email, m.cfg.Sender, subject, body))

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{creds.Email}, message); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", creds.Email, err)
	}
	return nil
}

func credentialsHTML(creds Credentials) string {
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome to Gym Visa, %s!</h2>
  <p>Your GymVisa account has been created by your organization administrator.</p>
  <p><strong>Organization:</strong> %s</p>
  <p><strong>Email:</strong> %s<br/>
     <strong>Password:</strong> <code>%s</code></p>
  <p>Download the Gym Visa app, log in with the credentials above, and start
     exploring gyms in your area.</p>
  <p style="color: #a33;">Please keep your credentials secure and change your
     password after your first login.</p>
</body>
</html>`, creds.Name, creds.OrganizationName, creds.Email, creds.Password)
}

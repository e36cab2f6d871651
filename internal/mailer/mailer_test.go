package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailerValidation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       SMTPConfig
		expectErr bool
	}{
		{"complete config", SMTPConfig{Host: "smtp.example.com", Port: "587", User: "a", Pass: "b", Sender: "s@example.com"}, false},
		{"sender defaults to user", SMTPConfig{Host: "smtp.example.com", Port: "587", User: "a", Pass: "b"}, false},
		{"missing host", SMTPConfig{Port: "587", User: "a", Pass: "b"}, true},
		{"missing port", SMTPConfig{Host: "smtp.example.com", User: "a", Pass: "b"}, true},
		{"missing credentials", SMTPConfig{Host: "smtp.example.com", Port: "587"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewSMTPMailer(tt.cfg)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, m)
			}
		})
	}
}

func TestCredentialsHTML(t *testing.T) {
	body := credentialsHTML(Credentials{
		Email:            "jane@acme.com",
		Password:         "acme123",
		Name:             "Jane",
		OrganizationName: "Acme",
	})
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "jane@acme.com")
	assert.Contains(t, body, "acme123")
	assert.Contains(t, body, "Acme")
}

func TestSendCredentialsRequiresRecipient(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "a", Pass: "b"})
	require.NoError(t, err)
	assert.Error(t, m.SendCredentials(Credentials{}))
}

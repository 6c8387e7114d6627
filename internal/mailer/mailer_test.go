package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestMailer(cfg Config) (*Mailer, *[]*gomail.Message) {
	m := New(cfg, logger.NewNop())
	var sent []*gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = append(sent, msg)
		return nil
	}
	return m, &sent
}

var smtpCfg = Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com", Password: "secret"}

func TestSendListingCreatedEmail(t *testing.T) {
	m, sent := newTestMailer(smtpCfg)

	require.NoError(t, m.SendListingCreatedEmail("seller@example.com", "Road bike"))

	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	assert.Equal(t, []string{"seller@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"New Listing Created"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Your listing 'Road bike' has been created successfully.")
}

func TestSendListingCreatedEmail_NotConfigured(t *testing.T) {
	m, sent := newTestMailer(Config{Host: "smtp.example.com", Port: 587})

	err := m.SendListingCreatedEmail("seller@example.com", "Road bike")

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, *sent)
}

func TestSendListingCreatedEmail_SMTPFailure(t *testing.T) {
	m, _ := newTestMailer(smtpCfg)
	m.send = func(*gomail.Message) error { return errors.New("535 auth failed") }

	err := m.SendListingCreatedEmail("seller@example.com", "Road bike")

	assert.ErrorContains(t, err, "535 auth failed")
}

func TestNew_SendsThroughSMTPDialer(t *testing.T) {
	m := New(Config{Host: "127.0.0.1", Port: 1, From: "noreply@example.com", Password: "secret"}, logger.NewNop())
	require.NotNil(t, m.send)

	err := m.SendListingCreatedEmail("seller@example.com", "Road bike")

	assert.Error(t, err, "nothing listens on port 1, so the real dialer must fail")
}

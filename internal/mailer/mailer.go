package mailer

import (
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const listingCreatedSubject = "New Listing Created"

var ErrNotConfigured = errors.New("smtp is not configured")

type Config struct {
	Host     string
	Port     int
	From     string
	Password string
}

// Mailer sends transactional emails over SMTP.
type Mailer struct {
	cfg    Config
	send   func(*gomail.Message) error
	logger *logger.Logger
}

func New(cfg Config, log *logger.Logger) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password)
	send := func(msg *gomail.Message) error { return d.DialAndSend(msg) }
	return &Mailer{cfg: cfg, send: send, logger: log.Named("Mailer")}
}

func (m *Mailer) configured() bool {
	return m.cfg.Host != "" && m.cfg.From != "" && m.cfg.Password != ""
}

func (m *Mailer) listingCreatedMessage(toEmail, listingTitle string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", listingCreatedSubject)
	msg.SetBody("text/plain", fmt.Sprintf("Your listing '%s' has been created successfully.", listingTitle))
	return msg
}

func (m *Mailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	if !m.configured() {
		m.logger.Debug("Skipping listing created email, SMTP not configured")
		return ErrNotConfigured
	}
	if err := m.send(m.listingCreatedMessage(toEmail, listingTitle)); err != nil {
		m.logger.Error("Failed to send email", zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("send listing created email: %w", err)
	}
	return nil
}

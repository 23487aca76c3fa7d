package delivery

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/jhillyerd/enmime"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Server   string
	Port     int
	Username string
	Password string
}

// Configured reports whether enough settings are present to relay mail.
func (c SMTPConfig) Configured() bool {
	return c.Server != "" && c.Username != ""
}

// NewSMTPSender returns an enmime sender that authenticates with PLAIN auth.
// net/smtp upgrades to STARTTLS when the relay offers it.
func NewSMTPSender(cfg SMTPConfig) (Sender, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("smtp server and username are required")
	}
	addr := net.JoinHostPort(cfg.Server, fmt.Sprint(cfg.Port))
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server)
	return enmime.NewSMTP(addr, auth), nil
}

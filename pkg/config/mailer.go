package config

import (
	"fmt"
	"strings"
)

// MailerConfig holds the settings for the outgoing email transport.
type MailerConfig struct {
	APIKey  string `koanf:"apikey"`
	From    string `koanf:"from"`
	To      string `koanf:"to"`
	Subject string `koanf:"subject"`
}

// String returns a string representation of the mailer configuration.
// The API key is masked.
func (c *MailerConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Mailer ---\n")
	b.WriteString(fmt.Sprintf("  apikey: %s\n", maskSecret(c.APIKey)))
	b.WriteString(fmt.Sprintf("  from: %s\n", c.From))
	b.WriteString(fmt.Sprintf("  to: %s\n", c.To))
	b.WriteString(fmt.Sprintf("  subject: %s\n", c.Subject))
	return b.String()
}

func (c *MailerConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("mailer API key is not configured")
	}
	if c.From == "" {
		return fmt.Errorf("mailer sender address is not configured")
	}
	if c.To == "" {
		return fmt.Errorf("mailer recipient address is not configured")
	}
	if c.Subject == "" {
		return fmt.Errorf("mailer subject is not configured")
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}

package config

import (
	"fmt"
	"strings"
	"time"
)

// NotifierConfig controls when and where low-stock events are published.
type NotifierConfig struct {
	Threshold int64         `koanf:"threshold"`
	Subject   string        `koanf:"subject"`
	Timeout   time.Duration `koanf:"timeout"`
}

// String returns a string representation of the notifier configuration.
func (c *NotifierConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Notifier ---\n")
	b.WriteString(fmt.Sprintf("  threshold: %d\n", c.Threshold))
	b.WriteString(fmt.Sprintf("  subject: %s\n", c.Subject))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *NotifierConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("notifier threshold must not be negative: %d", c.Threshold)
	}
	if c.Subject == "" {
		return fmt.Errorf("notifier subject is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("notifier publish timeout is not configured")
	}
	return nil
}

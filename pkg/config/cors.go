package config

import (
	"fmt"
	"strings"
)

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowedOrigins"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  allowedOrigins: %v\n", c.AllowedOrigins))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	for _, origin := range c.AllowedOrigins {
		if origin == "" {
			return fmt.Errorf("CORS allowed origin must not be empty")
		}
	}
	return nil
}

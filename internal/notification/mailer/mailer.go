// Package mailer delivers low-stock alert emails.
package mailer

import "context"

// Notifier sends a rendered alert message. Delivery is best-effort: callers
// log failures and move on.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

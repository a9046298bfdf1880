// Package events contains the event types exchanged between the inventory
// service and the notification service.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LowStockEvent is published when a stock adjustment leaves a product below
// the configured threshold. The subject is carried with the event so that
// the routing stays a configuration concern of the publishing service.
type LowStockEvent struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`

	subject string
}

// NewLowStockEvent creates a LowStockEvent bound to the given subject.
func NewLowStockEvent(subject string, productID uuid.UUID, name string, quantity int64) LowStockEvent {
	return LowStockEvent{
		ProductID:  productID,
		Name:       name,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
		subject:    subject,
	}
}

func (e LowStockEvent) Subject() string {
	return e.subject
}

func (e LowStockEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

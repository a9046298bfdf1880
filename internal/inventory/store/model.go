package store

import (
	"time"

	"github.com/google/uuid"
)

// Product is the stored inventory record. Price is in minor currency units.
type Product struct {
	ID          uuid.UUID
	Name        string
	Quantity    int64
	Price       int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

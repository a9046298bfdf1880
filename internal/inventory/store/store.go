// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/google/uuid"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create adds a new product with zero quantity.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, name string, price int64, description string) (*Product, error)

	// ApplyDelta atomically adds delta to the product's quantity, refusing
	// the change when the result would be negative. The constraint check and
	// the mutation are a single operation with respect to concurrent callers.
	// Returns ErrProductNotFound if no product exists with the given ID and
	// ErrInsufficientStock if the resulting quantity would be negative.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta int64) (*Product, error)

	// UpdatePrice sets the product's price.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*Product, error)

	// DeleteByID removes a product and returns the removed record.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) (*Product, error)
}

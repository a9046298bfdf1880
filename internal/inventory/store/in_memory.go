package store

import (
	"context"
	"sync"
	"time"

	ierrors "github.com/destore/inventory/internal/inventory/errors"
	"github.com/google/uuid"
)

// inMemory implements ProductStore using an in-memory map. The mutex gives
// the same per-id atomicity guarantee for ApplyDelta as the conditional
// UPDATE in PgStore.
type inMemory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[uuid.UUID]Product),
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	return list, nil
}

// Create creates a new product with zero quantity and returns it.
func (s *inMemory) Create(_ context.Context, name string, price int64, description string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	product := Product{
		ID:          uuid.New(),
		Name:        name,
		Quantity:    0,
		Price:       price,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products[product.ID] = product

	return &product, nil
}

// ApplyDelta adds delta to the product's quantity under the store lock,
// refusing changes that would take the quantity below zero.
func (s *inMemory) ApplyDelta(_ context.Context, id uuid.UUID, delta int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierrors.ErrProductNotFound
	}
	if p.Quantity+delta < 0 {
		return nil, ierrors.ErrInsufficientStock
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return &p, nil
}

// UpdatePrice sets the product's price.
func (s *inMemory) UpdatePrice(_ context.Context, id uuid.UUID, price int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierrors.ErrProductNotFound
	}
	p.Price = price
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return &p, nil
}

// DeleteByID deletes a product by its ID and returns the removed record.
func (s *inMemory) DeleteByID(_ context.Context, id uuid.UUID) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierrors.ErrProductNotFound
	}
	delete(s.products, id)
	return &p, nil
}

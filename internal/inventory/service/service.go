// Package service implements the inventory business logic: product lifecycle
// and the stock adjustment rules.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/destore/inventory/internal/inventory/store"
	"github.com/destore/inventory/pkg/messaging"
	"github.com/destore/inventory/pkg/messaging/events"
	"github.com/google/uuid"
)

// ProductService defines the methods for managing products and their stock.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product with zero stock.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// AddStock increases the product's quantity by the given positive amount.
	// Returns ErrProductNotFound if no product exists with the given ID.
	AddStock(ctx context.Context, id uuid.UUID, quantity int64) (*ProductDto, error)

	// RemoveStock decreases the product's quantity by the given positive
	// amount. Returns ErrInsufficientStock when the result would be negative.
	RemoveStock(ctx context.Context, id uuid.UUID, quantity int64) (*ProductDto, error)

	// AdjustStock applies a signed delta to the product's quantity.
	// Returns ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (*ProductDto, error)

	// UpdatePrice sets the product's price.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)
}

// NotifierSettings controls the low-stock alert trigger. An alert event is
// published whenever a successful stock change leaves the quantity below
// Threshold. Publishing is detached from the caller's request.
type NotifierSettings struct {
	Threshold int64
	Subject   string
	Timeout   time.Duration
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	notifier   NotifierSettings
	logger     *slog.Logger
}

// NewService creates a new instance of ProductService with the provided
// repository. The publisher may be nil, which disables low-stock alerts.
func NewService(repo store.ProductStore, publisher messaging.Publisher, notifier NotifierSettings, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "service"),
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Stock always starts at zero.
type ProductCreateDto struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Price       int64  `json:"price"       validate:"omitempty,min=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StockChangeDto carries the amount for directional stock operations.
// The amount must be strictly positive.
type StockChangeDto struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// StockAdjustDto carries the signed delta for the adjust operation.
// A zero delta fails the required rule and is rejected.
type StockAdjustDto struct {
	Delta int64 `json:"delta" validate:"required"`
}

// PriceUpdateDto carries the new price for the price update operation.
// Zero is a legal price, so the field must not carry the required rule.
type PriceUpdateDto struct {
	Price int64 `json:"price" validate:"min=0"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product with zero stock and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, product.Name, product.Price, product.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// AddStock increases the product's quantity and returns the updated product.
func (s *Service) AddStock(ctx context.Context, id uuid.UUID, quantity int64) (*ProductDto, error) {
	return s.applyDelta(ctx, id, quantity)
}

// RemoveStock decreases the product's quantity and returns the updated
// product. Returns ErrInsufficientStock when the result would be negative.
func (s *Service) RemoveStock(ctx context.Context, id uuid.UUID, quantity int64) (*ProductDto, error) {
	return s.applyDelta(ctx, id, -quantity)
}

// AdjustStock applies a signed delta to the product's quantity and returns
// the updated product. Returns ErrInsufficientStock when the result would be
// negative.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (*ProductDto, error) {
	return s.applyDelta(ctx, id, delta)
}

// applyDelta performs the atomic stock change and, on success, triggers the
// low-stock alert check.
func (s *Service) applyDelta(ctx context.Context, id uuid.UUID, delta int64) (*ProductDto, error) {
	product, err := s.repository.ApplyDelta(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to apply stock delta %d to product %s: %w", delta, id, err)
	}

	s.maybeNotifyLowStock(product)

	return toDto(product), nil
}

// UpdatePrice sets the product's price and returns the updated product.
func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*ProductDto, error) {
	product, err := s.repository.UpdatePrice(ctx, id, price)
	if err != nil {
		return nil, fmt.Errorf("failed to update price for product %s: %w", id, err)
	}

	return toDto(product), nil
}

// DeleteByID deletes a product by its ID and returns the removed product.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	return toDto(product), nil
}

// maybeNotifyLowStock publishes a low-stock event when the product's quantity
// has dropped below the configured threshold. The publish runs detached from
// the request with its own timeout; failures are logged and swallowed so the
// caller's result is never affected.
func (s *Service) maybeNotifyLowStock(product *store.Product) {
	if s.publisher == nil || product.Quantity >= s.notifier.Threshold {
		return
	}

	event := events.NewLowStockEvent(s.notifier.Subject, product.ID, product.Name, product.Quantity)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifier.Timeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish low stock event",
				"product_id", product.ID.String(),
				"quantity", product.Quantity,
				"error", err,
			)
			return
		}
		s.logger.Info("low stock event published",
			"product_id", product.ID.String(),
			"quantity", product.Quantity,
		)
	}()
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID.String(),
		Name:        product.Name,
		Quantity:    product.Quantity,
		Price:       product.Price,
		Description: product.Description,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

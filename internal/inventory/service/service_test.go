package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	ierrors "github.com/destore/inventory/internal/inventory/errors"
	"github.com/destore/inventory/internal/inventory/store"
	"github.com/destore/inventory/pkg/messaging"
	"github.com/destore/inventory/pkg/messaging/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	product  store.Product
	products []store.Product
	error    error
	gotDelta int64
}

// Simulate finding a product by ID
func (m *mockProductStore) FindByID(_ context.Context, _ uuid.UUID) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate finding all products
func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

// Simulate creating a product
func (m *mockProductStore) Create(_ context.Context, _ string, _ int64, _ string) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate an atomic stock change, recording the requested delta
func (m *mockProductStore) ApplyDelta(_ context.Context, _ uuid.UUID, delta int64) (*store.Product, error) {
	m.gotDelta = delta
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate updating a product's price
func (m *mockProductStore) UpdatePrice(_ context.Context, _ uuid.UUID, _ int64) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate deleting a product by ID
func (m *mockProductStore) DeleteByID(_ context.Context, _ uuid.UUID) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// capturingPublisher collects published events on a channel so tests can wait
// for the detached publish goroutine.
type capturingPublisher struct {
	events chan messaging.Event
	error  error
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{events: make(chan messaging.Event, 10)}
}

func (p *capturingPublisher) Publish(_ context.Context, event messaging.Event) error {
	if p.error != nil {
		return p.error
	}
	p.events <- event
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() NotifierSettings {
	return NotifierSettings{Threshold: 10, Subject: "inventory.stock.low", Timeout: time.Second}
}

func newTestService(repo store.ProductStore, publisher messaging.Publisher) *Service {
	return NewService(repo, publisher, testSettings(), testLogger())
}

func Test_ProductService_FindByID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   uuid.UUID
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: mockID, Name: "Toy", Quantity: 3},
			},
			productID: mockID,
			expected:  &ProductDto{ID: mockID.String(), Name: "Toy", Quantity: 3, CreatedAt: time.Time{}.Format(time.RFC3339), UpdatedAt: time.Time{}.Format(time.RFC3339)},
		},
		{
			name: "Error - product not found",
			mockStore: &mockProductStore{
				error: ierrors.ErrProductNotFound,
			},
			productID:   mockID,
			expected:    nil,
			expectError: ierrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, nil)
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectedLen int
		expectError error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{{ID: mockID, Name: "Toy"}},
			},
			expectedLen: 1,
		},
		{
			name: "Success - no products",
			mockStore: &mockProductStore{
				products: []store.Product{},
			},
			expectedLen: 0,
		},
		{
			name: "Error - store error",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, nil)
			// when
			found, err := service.FindAll(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Len(t, found, tc.expectedLen)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	now := time.Now().UTC().Truncate(time.Second)
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		dto         ProductCreateDto
		expected    *ProductDto
		expectError bool
	}{
		{
			name: "Success - product created with zero stock",
			mockStore: &mockProductStore{
				product: store.Product{ID: mockID, Name: "Widget", Quantity: 0, CreatedAt: now, UpdatedAt: now},
			},
			dto: ProductCreateDto{Name: "Widget"},
			expected: &ProductDto{
				ID:        mockID.String(),
				Name:      "Widget",
				Quantity:  0,
				CreatedAt: now.Format(time.RFC3339),
				UpdatedAt: now.Format(time.RFC3339),
			},
		},
		{
			name: "Error - store failure",
			mockStore: &mockProductStore{
				error: errors.New("insert failed"),
			},
			dto:         ProductCreateDto{Name: "Widget"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, nil)
			// when
			created, err := service.Create(context.Background(), tc.dto)
			// then
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
			assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		})
	}
}

func Test_ProductService_StockOperations(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name          string
		mockStore     *mockProductStore
		op            func(s *Service) (*ProductDto, error)
		expectedDelta int64
		expectError   error
	}{
		{
			name: "AddStock applies positive delta",
			mockStore: &mockProductStore{
				product: store.Product{ID: mockID, Name: "Toy", Quantity: 15},
			},
			op: func(s *Service) (*ProductDto, error) {
				return s.AddStock(context.Background(), mockID, 5)
			},
			expectedDelta: 5,
		},
		{
			name: "RemoveStock applies negative delta",
			mockStore: &mockProductStore{
				product: store.Product{ID: mockID, Name: "Toy", Quantity: 15},
			},
			op: func(s *Service) (*ProductDto, error) {
				return s.RemoveStock(context.Background(), mockID, 5)
			},
			expectedDelta: -5,
		},
		{
			name: "AdjustStock passes the delta through",
			mockStore: &mockProductStore{
				product: store.Product{ID: mockID, Name: "Toy", Quantity: 15},
			},
			op: func(s *Service) (*ProductDto, error) {
				return s.AdjustStock(context.Background(), mockID, -3)
			},
			expectedDelta: -3,
		},
		{
			name: "RemoveStock surfaces insufficient stock",
			mockStore: &mockProductStore{
				error: ierrors.ErrInsufficientStock,
			},
			op: func(s *Service) (*ProductDto, error) {
				return s.RemoveStock(context.Background(), mockID, 20)
			},
			expectedDelta: -20,
			expectError:   ierrors.ErrInsufficientStock,
		},
		{
			name: "AdjustStock surfaces not found",
			mockStore: &mockProductStore{
				error: ierrors.ErrProductNotFound,
			},
			op: func(s *Service) (*ProductDto, error) {
				return s.AdjustStock(context.Background(), mockID, 1)
			},
			expectedDelta: 1,
			expectError:   ierrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, nil)
			// when
			updated, err := tc.op(service)
			// then
			assert.Equal(t, tc.expectedDelta, tc.mockStore.gotDelta)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, updated)
		})
	}
}

func Test_ProductService_LowStockNotification(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name        string
		newQuantity int64
		expectEvent bool
	}{
		{
			name:        "quantity below threshold triggers one event",
			newQuantity: 8,
			expectEvent: true,
		},
		{
			name:        "quantity above threshold triggers nothing",
			newQuantity: 12,
			expectEvent: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := &mockProductStore{
				product: store.Product{ID: mockID, Name: "Widget", Quantity: tc.newQuantity},
			}
			publisher := newCapturingPublisher()
			service := newTestService(mockStore, publisher)
			// when
			updated, err := service.RemoveStock(context.Background(), mockID, 1)
			// then
			require.NoError(t, err)
			require.NotNil(t, updated)
			if tc.expectEvent {
				select {
				case got := <-publisher.events:
					event, ok := got.(events.LowStockEvent)
					require.True(t, ok)
					assert.Equal(t, "Widget", event.Name)
					assert.Equal(t, tc.newQuantity, event.Quantity)
					assert.Equal(t, mockID, event.ProductID)
				case <-time.After(time.Second):
					t.Fatal("expected a low stock event to be published")
				}
				// exactly one
				select {
				case <-publisher.events:
					t.Fatal("expected exactly one low stock event")
				case <-time.After(50 * time.Millisecond):
				}
			} else {
				select {
				case <-publisher.events:
					t.Fatal("expected no low stock event")
				case <-time.After(50 * time.Millisecond):
				}
			}
		})
	}
}

func Test_ProductService_PublishFailureDoesNotAffectResult(t *testing.T) {
	// given
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	mockStore := &mockProductStore{
		product: store.Product{ID: mockID, Name: "Widget", Quantity: 2},
	}
	publisher := newCapturingPublisher()
	publisher.error = errors.New("broker unavailable")
	service := newTestService(mockStore, publisher)
	// when
	updated, err := service.RemoveStock(context.Background(), mockID, 1)
	// then
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.Quantity)
}

// Test_ProductService_Scenario walks the full lifecycle against the real
// in-memory store: create, add, failed remove, adjust to zero.
func Test_ProductService_Scenario(t *testing.T) {
	// given
	ctx := context.Background()
	publisher := newCapturingPublisher()
	service := NewService(store.NewInMemoryStore(), publisher, testSettings(), testLogger())

	// when: create "Widget"
	created, err := service.Create(ctx, ProductCreateDto{Name: "Widget"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, created.Quantity)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	id := uuid.MustParse(created.ID)

	// and: add 5 (still below threshold, so this fires an alert too)
	updated, err := service.AddStock(ctx, id, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, updated.Quantity)

	select {
	case got := <-publisher.events:
		event, ok := got.(events.LowStockEvent)
		require.True(t, ok)
		assert.EqualValues(t, 5, event.Quantity)
	case <-time.After(time.Second):
		t.Fatal("expected a low stock event after adding to 5")
	}

	// and: removing 20 fails and leaves quantity unchanged
	_, err = service.RemoveStock(ctx, id, 20)
	assert.ErrorIs(t, err, ierrors.ErrInsufficientStock)
	current, err := service.FindByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 5, current.Quantity)

	// and: adjusting by -5 drains the stock and fires the alert
	updated, err = service.AdjustStock(ctx, id, -5)
	require.NoError(t, err)
	assert.EqualValues(t, 0, updated.Quantity)

	select {
	case got := <-publisher.events:
		event, ok := got.(events.LowStockEvent)
		require.True(t, ok)
		assert.Equal(t, "Widget", event.Name)
		assert.EqualValues(t, 0, event.Quantity)
	case <-time.After(time.Second):
		t.Fatal("expected a low stock event to be published")
	}
}

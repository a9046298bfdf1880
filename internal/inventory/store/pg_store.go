package store

import (
	"context"
	"errors"
	"fmt"

	ierrors "github.com/destore/inventory/internal/inventory/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = "id, name, quantity, price, description, created_at, updated_at"

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all available products ordered by creation time.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY created_at", productColumns)
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}

// Create adds a new product with zero quantity. created_at and updated_at
// are set by the same statement and are therefore equal.
func (p *PgStore) Create(ctx context.Context, name string, price int64, description string) (*Product, error) {
	query := fmt.Sprintf(`INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING %s`, productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, name, price, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// ApplyDelta atomically adds delta to the product's quantity. The negative
// check is part of the UPDATE predicate, so concurrent deltas on the same id
// serialize on the row lock and no check-then-write window exists.
// Returns ErrProductNotFound or ErrInsufficientStock when no row matches.
func (p *PgStore) ApplyDelta(ctx context.Context, id uuid.UUID, delta int64) (*Product, error) {
	query := fmt.Sprintf(`UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING %s`, productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, p.classifyNoRows(ctx, id)
		}
		return nil, fmt.Errorf("failed to apply stock delta: %w", err)
	}
	return product, nil
}

// UpdatePrice sets the product's price.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) UpdatePrice(ctx context.Context, id uuid.UUID, price int64) (*Product, error) {
	query := fmt.Sprintf(`UPDATE products
		SET price = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, id, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product price: %w", err)
	}
	return product, nil
}

// DeleteByID removes a product by its unique identifier and returns the
// removed record. Returns ErrProductNotFound if no product exists.
func (p *PgStore) DeleteByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := fmt.Sprintf("DELETE FROM products WHERE id = $1 RETURNING %s", productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return product, nil
}

// classifyNoRows disambiguates a no-match conditional update: the product is
// either missing or present with insufficient stock.
func (p *PgStore) classifyNoRows(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := p.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return ierrors.ErrProductNotFound
	}
	return ierrors.ErrInsufficientStock
}

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Quantity,
		&product.Price,
		&product.Description,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

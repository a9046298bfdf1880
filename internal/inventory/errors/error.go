// Package errors provides custom error types for inventory operations.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when an id does not resolve to a product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when an adjustment would take a
	// product's quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

package service

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound  = errors.New("import request not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrRequestFinalized is returned when approving or rejecting a request
	// that already reached a terminal state. Stock is never touched twice.
	ErrRequestFinalized = errors.New("import request already finalized")
)

// InsufficientStockError reports a replenishment request exceeding the shared
// pool. It carries the quantities the operator needs to see.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// PersistenceError wraps an underlying store failure. The operation did not
// complete; the caller may retry it manually.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

package repositories

import "errors"

// Sentinel errors returned by repository implementations so callers can
// map storage outcomes to HTTP statuses without string matching.
var (
	ErrNotFound  = errors.New("record not found")
	ErrEmptyCart = errors.New("cart is empty")
)

package book

import "errors"

var (
	// ErrInvalidConfig is returned by New when tick_size is out of [0, 8].
	ErrInvalidConfig = errors.New("Tick size too large. Must be [0, 8].")

	// ErrInvalidOrder is returned by Submit* when quantity or price is zero.
	ErrInvalidOrder = errors.New("invalid order: quantity and price must be > 0")
)

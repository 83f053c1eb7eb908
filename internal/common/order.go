package common

import (
	"fmt"
	"time"
)

// Order is the wire-level representation of an order: floating-point price,
// string identifiers, wall-clock timestamps. internal/engine translates
// this into a core book.Order (integer ticks, no identity beyond a uint64
// id) before it ever reaches the matching algorithm.
type Order struct {
	UUID          string    // Order tracked uuid
	AssetType     AssetType // Which instrument's book this targets
	OrderType     OrderType // Limit or market
	Ticker        string    // Specific asset identifier
	Side          Side      // Order side
	LimitPrice    float64   // Limiting price
	Quantity      uint64    // Remaining quantity
	TotalQuantity uint64    // Total volume requested
	Timestamp     time.Time // Time of arrival of order
	ExchTimestamp time.Time // Time of arrival of order into the book
	Owner         string    // Who owns this order
}

func (order Order) String() string {
	return fmt.Sprintf(
		`UUID:          %v
AssetType:     %v
OrderType:     %v
Ticker:        %s
Side:          %v
LimitPrice:    %f
Quantity:      %d (Total: %d)
Timestamp:     %v
ExchTimestamp: %v
Owner:         %s`,
		order.UUID,
		order.AssetType,
		order.OrderType,
		order.Ticker,
		order.Side,
		order.LimitPrice,
		order.Quantity,
		order.TotalQuantity,
		order.Timestamp.Format(time.RFC3339),
		order.ExchTimestamp.Format(time.RFC3339),
		order.Owner,
	)
}

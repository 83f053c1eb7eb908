// Package book implements a single-instrument limit order book: the
// price-indexed collection of price levels, the matching algorithm that
// walks them under price-time priority, and the order/level lifecycle that
// keeps both mutually consistent.
package book

// Side identifies which side of the book an order rests on.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "BID"
	}
	return "ASK"
}

// Order is a single resting or incoming order. Price is an integer number
// of ticks (see Book.ToTicks); quantity and fill state are in whole units.
//
// Orders do not reference the PriceLevel that holds them. The intrusive
// next/prev fields below thread an Order into at most one PriceLevel's FIFO
// queue at a time; only PriceLevel reads or writes them. This avoids the
// Order<->Limit back-pointer cycle the original implementation experimented
// with and later abandoned.
type Order struct {
	id            uint64
	createdAt     int64
	side          Side
	quantity      uint64
	filledQuantity uint64
	filledCost    uint64
	price         int64

	next *Order
	prev *Order
}

func newOrder(id uint64, createdAt int64, side Side, quantity uint64, price int64) (*Order, error) {
	if quantity == 0 {
		return nil, ErrInvalidOrder
	}
	if price <= 0 {
		return nil, ErrInvalidOrder
	}
	return &Order{
		id:        id,
		createdAt: createdAt,
		side:      side,
		quantity:  quantity,
		price:     price,
	}, nil
}

// ID is the order's book-assigned identifier. 0 means "no order".
func (o *Order) ID() uint64 { return o.id }

// CreatedAt is the book-supplied creation timestamp, milliseconds since epoch.
func (o *Order) CreatedAt() int64 { return o.createdAt }

// Side is BID or ASK, fixed at construction.
func (o *Order) Side() Side { return o.side }

// Price is the order's limit price in ticks, fixed at construction.
func (o *Order) Price() int64 { return o.price }

// Quantity is the original requested size, fixed at construction.
func (o *Order) Quantity() uint64 { return o.quantity }

// FilledQuantity is the cumulative filled size across all fills.
func (o *Order) FilledQuantity() uint64 { return o.filledQuantity }

// FilledCost is the cumulative (price * filled units) across all fills, for
// VWAP reporting.
func (o *Order) FilledCost() uint64 { return o.filledCost }

// OpenQuantity is the still-unfilled portion of the order.
func (o *Order) OpenQuantity() uint64 { return o.quantity - o.filledQuantity }

// IsComplete reports whether the order has no remaining open quantity.
func (o *Order) IsComplete() bool { return o.OpenQuantity() == 0 }

// fill records units filled at the given cost. units must not exceed the
// order's current open quantity; callers (the matcher) guarantee this.
func (o *Order) fill(units, cost uint64) {
	o.filledQuantity += units
	o.filledCost += cost
}

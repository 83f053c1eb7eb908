package book

import (
	"fmt"
	"math"
)

const maxTickSize = 8

// Book composes the bid and ask sides of a single instrument, owns the
// order index, and assigns order/fill ids. It is not safe for concurrent
// use; an embedder wanting concurrency must wrap a Book with an external
// mutex or shard by instrument.
type Book struct {
	bid *BookSide
	ask *BookSide

	orderIndex map[uint64]*Order

	nextOrderID uint64
	nextFillID  uint64

	tickSize uint8
	exponent float64

	now func() int64
}

// New constructs an empty Book at the given tick size (decimal digits of
// price precision, in [0, 8]).
func New(tickSize uint8, now func() int64) (*Book, error) {
	if tickSize > maxTickSize {
		return nil, ErrInvalidConfig
	}
	return &Book{
		bid:        newBookSide(Bid),
		ask:        newBookSide(Ask),
		orderIndex: make(map[uint64]*Order),
		tickSize:   tickSize,
		exponent:   math.Pow(10, float64(tickSize)),
		now:        now,
	}, nil
}

// TickSize is the configured decimal-digit price precision.
func (b *Book) TickSize() uint8 { return b.tickSize }

// ToTicks converts a floating-point user-facing price into the book's
// internal integer tick representation: round(price * 10^tick_size).
func (b *Book) ToTicks(price float64) int64 {
	return int64(math.Round(price * b.exponent))
}

// FormatPrice renders an internal tick price back to a fixed-point string
// with tick_size fractional digits.
func (b *Book) FormatPrice(ticks int64) string {
	return fmt.Sprintf("%.*f", b.tickSize, float64(ticks)/b.exponent)
}

// PriceToFloat converts an internal tick price back to a floating-point
// user-facing price, the inverse of ToTicks. Embedders populating a
// float64-typed wire report (rather than a display string) use this instead
// of parsing FormatPrice's output.
func (b *Book) PriceToFloat(ticks int64) float64 {
	return float64(ticks) / b.exponent
}

func (b *Book) sideFor(side Side) (own, opposite *BookSide) {
	if side == Bid {
		return b.bid, b.ask
	}
	return b.ask, b.bid
}

// SubmitLimit creates a limit order, runs the matcher against the opposite
// side, and rests any residual on its own side. The returned order id is
// valid even for a fully-filled order, but such an order is never recorded
// in the index -- it existed only for the duration of this call. Callers
// who need post-fill state must inspect the returned *Order.
func (b *Book) SubmitLimit(side Side, quantity uint64, priceTicks int64) (*Order, []Trade, error) {
	b.nextOrderID++
	order, err := newOrder(b.nextOrderID, b.now(), side, quantity, priceTicks)
	if err != nil {
		b.nextOrderID--
		return nil, nil, err
	}

	_, opposite := b.sideFor(side)
	trades := b.match(order, opposite)

	if order.OpenQuantity() > 0 {
		own, _ := b.sideFor(side)
		own.insertOrder(order)
		b.orderIndex[order.id] = order
	}

	return order, trades, nil
}

// SubmitMarket is equivalent to SubmitLimit with a price that crosses every
// opposing level (+inf for BID, 0+ for ASK); any residual is discarded, not
// inserted.
func (b *Book) SubmitMarket(side Side, quantity uint64) (*Order, []Trade, error) {
	marketPrice := int64(math.MaxInt64)
	if side == Ask {
		marketPrice = 1
	}

	b.nextOrderID++
	order, err := newOrder(b.nextOrderID, b.now(), side, quantity, marketPrice)
	if err != nil {
		b.nextOrderID--
		return nil, nil, err
	}

	_, opposite := b.sideFor(side)
	trades := b.match(order, opposite)
	// Residual is intentionally discarded: market orders never rest.
	return order, trades, nil
}

// Cancel removes a resting order by id. Returns whether anything was
// cancelled; cancelling an already-removed or unknown id is a no-op
// returning false.
func (b *Book) Cancel(orderID uint64) bool {
	order, ok := b.orderIndex[orderID]
	if !ok {
		return false
	}
	own, _ := b.sideFor(order.side)
	own.removeOrder(order)
	delete(b.orderIndex, orderID)
	return true
}

// Lookup returns the resting order for id, if any.
func (b *Book) Lookup(orderID uint64) (*Order, bool) {
	order, ok := b.orderIndex[orderID]
	return order, ok
}

// InsideBidPrice is the best bid price in ticks, or 0 if the bid side is empty.
func (b *Book) InsideBidPrice() int64 { return insidePrice(b.bid) }

// InsideAskPrice is the best ask price in ticks, or 0 if the ask side is empty.
func (b *Book) InsideAskPrice() int64 { return insidePrice(b.ask) }

func insidePrice(side *BookSide) int64 {
	lvl := side.Best()
	if lvl == nil {
		return 0
	}
	return lvl.price
}

// InsideBidQuantity is the open quantity of the head order at the best bid
// level (not the level's aggregate volume -- see InsideBidVolume for that).
func (b *Book) InsideBidQuantity() uint64 { return insideHeadQuantity(b.bid) }

// InsideAskQuantity is the open quantity of the head order at the best ask
// level (not the level's aggregate volume -- see InsideAskVolume for that).
func (b *Book) InsideAskQuantity() uint64 { return insideHeadQuantity(b.ask) }

func insideHeadQuantity(side *BookSide) uint64 {
	lvl := side.Best()
	if lvl == nil || lvl.Head() == nil {
		return 0
	}
	return lvl.Head().OpenQuantity()
}

// InsideBidVolume is the aggregate open quantity of every order at the best
// bid level.
func (b *Book) InsideBidVolume() uint64 { return insideVolume(b.bid) }

// InsideAskVolume is the aggregate open quantity of every order at the best
// ask level.
func (b *Book) InsideAskVolume() uint64 { return insideVolume(b.ask) }

func insideVolume(side *BookSide) uint64 {
	lvl := side.Best()
	if lvl == nil {
		return 0
	}
	return lvl.TotalVolume()
}

// Size is the number of resting orders across both sides.
func (b *Book) Size() int { return len(b.orderIndex) }

// BidSide and AskSide expose the underlying sides for diagnostics and
// tests; the matcher itself never needs callers to reach through these.
func (b *Book) BidSide() *BookSide { return b.bid }
func (b *Book) AskSide() *BookSide { return b.ask }

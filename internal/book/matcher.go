package book

// Trade is a single matched quantity between one incoming and one resting
// order, executed at the resting order's price (price-time priority: the
// maker sets the price).
type Trade struct {
	FillID        uint64
	TakerOrderID  uint64
	MakerOrderID  uint64
	Price         int64
	Quantity      uint64
}

// crossable reports whether an incoming order on side at price limit can
// trade against a resting level at restingPrice on the opposite side.
func crossable(side Side, limit, restingPrice int64) bool {
	if side == Bid {
		return restingPrice <= limit
	}
	return restingPrice >= limit
}

// match walks opposite level-by-level, head-first within each level,
// filling incoming against resting orders until either incoming is
// complete or the opposite side no longer crosses incoming's limit price.
//
// Every trade emitted reflects a committed fill on both sides -- the loop
// never backs out a partially-applied fill. Exact-fill of a resting order
// removes it from its level atomically with the trade; the next iteration
// re-reads opposite.Best() so queue exhaustion and level destruction are
// both handled by the single removeOrder call path.
func (b *Book) match(incoming *Order, opposite *BookSide) []Trade {
	var trades []Trade

	for incoming.OpenQuantity() > 0 {
		best := opposite.Best()
		if best == nil {
			break
		}
		if !crossable(incoming.side, incoming.price, best.price) {
			break
		}

		for incoming.OpenQuantity() > 0 && !best.IsEmpty() {
			resting := best.Head()
			tradeQty := min(incoming.OpenQuantity(), resting.OpenQuantity())
			tradePrice := resting.price
			cost := tradeQty * uint64(tradePrice)

			resting.fill(tradeQty, cost)
			best.adjustVolume(tradeQty)
			incoming.fill(tradeQty, cost)

			b.nextFillID++
			trades = append(trades, Trade{
				FillID:       b.nextFillID,
				TakerOrderID: incoming.id,
				MakerOrderID: resting.id,
				Price:        tradePrice,
				Quantity:     tradeQty,
			})

			if resting.OpenQuantity() == 0 {
				opposite.removeOrder(resting)
			}
		}
	}

	return trades
}

func min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

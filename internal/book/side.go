package book

import "github.com/tidwall/btree"

// levels is the ordered price->PriceLevel structure a BookSide is built on.
// Keyed by price and kept in best-first order by the comparator BookSide
// installs (descending for bids, ascending for asks) -- this plays the role
// spec.md describes as "a mapping from price to PriceLevel" AND "a
// best-first ordered list threading those levels" simultaneously: the btree
// gives O(log n) lookup-by-price (Get) and O(log n) access to the head of
// the best-first order (Min), which together satisfy both representations
// without hand-maintaining a second linked structure in parallel.
type levels = btree.BTreeG[*PriceLevel]

// BookSide holds every price level on one side of the book (BID or ASK).
type BookSide struct {
	side Side
	tree *levels
}

func newBookSide(side Side) *BookSide {
	var less func(a, b *PriceLevel) bool
	if side == Bid {
		// Higher price sorts first for bids.
		less = func(a, b *PriceLevel) bool { return a.price > b.price }
	} else {
		// Lower price sorts first for asks.
		less = func(a, b *PriceLevel) bool { return a.price < b.price }
	}
	return &BookSide{
		side: side,
		tree: btree.NewBTreeG(less),
	}
}

// Best returns the inside level for this side, or nil if the side is empty.
func (s *BookSide) Best() *PriceLevel {
	lvl, ok := s.tree.Min()
	if !ok {
		return nil
	}
	return lvl
}

// Find returns the level at price, or nil if no order rests there.
func (s *BookSide) Find(price int64) *PriceLevel {
	lvl, ok := s.tree.Get(&PriceLevel{price: price})
	if !ok {
		return nil
	}
	return lvl
}

// Len is the number of distinct price levels on this side.
func (s *BookSide) Len() int { return s.tree.Len() }

// Levels returns every level on this side in best-first order. Intended for
// tests and diagnostics; the matcher never needs the full list.
func (s *BookSide) Levels() []*PriceLevel {
	out := make([]*PriceLevel, 0, s.tree.Len())
	s.tree.Scan(func(lvl *PriceLevel) bool {
		out = append(out, lvl)
		return true
	})
	return out
}

// insertOrder appends order to the level at order.price, creating and
// linking the level first if this is the first order at that price.
func (s *BookSide) insertOrder(order *Order) {
	lvl := s.Find(order.price)
	if lvl == nil {
		lvl = newPriceLevel(order.price)
		s.tree.Set(lvl)
	}
	lvl.pushBack(order)
}

// removeOrder removes order from its level. If the level becomes empty it
// is unlinked from the tree -- the next call to Best() then naturally
// returns the next-best level, since the tree no longer holds the empty one.
func (s *BookSide) removeOrder(order *Order) {
	lvl := s.Find(order.price)
	if lvl == nil {
		return
	}
	lvl.remove(order)
	if lvl.IsEmpty() {
		s.tree.Delete(lvl)
	}
}

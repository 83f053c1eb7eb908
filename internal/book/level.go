package book

// PriceLevel is a FIFO queue of orders resting at one price on one side. It
// maintains aggregate volume and order count so the book never needs to
// walk the queue to answer depth queries.
//
// The queue is an intrusive doubly-linked list threaded through the
// Order.next/Order.prev fields: pushBack is allocation-free and remove is
// O(1) given an order handle, since the order already carries its
// neighbours within this level.
type PriceLevel struct {
	price       int64
	totalVolume uint64
	size        int

	head *Order
	tail *Order
}

func newPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{price: price}
}

// Price is the price, in ticks, all member orders share.
func (l *PriceLevel) Price() int64 { return l.price }

// TotalVolume is the sum of open_quantity across every order in the level.
func (l *PriceLevel) TotalVolume() uint64 { return l.totalVolume }

// Size is the number of orders resting in the level.
func (l *PriceLevel) Size() int { return l.size }

// IsEmpty reports whether the level holds no orders.
func (l *PriceLevel) IsEmpty() bool { return l.size == 0 }

// Head returns the level's oldest (earliest-arrived) order, or nil if empty.
func (l *PriceLevel) Head() *Order { return l.head }

// pushBack appends order to the FIFO tail. The caller (BookSide) guarantees
// order.price == l.price and order.side matches the side this level belongs
// to.
func (l *PriceLevel) pushBack(order *Order) {
	order.prev = l.tail
	order.next = nil
	if l.tail != nil {
		l.tail.next = order
	} else {
		l.head = order
	}
	l.tail = order

	l.totalVolume += order.OpenQuantity()
	l.size++
}

// remove detaches order from the queue, wherever it sits (head, tail, or
// middle), using only the order's own neighbour pointers.
func (l *PriceLevel) remove(order *Order) {
	l.totalVolume -= order.OpenQuantity()
	l.size--

	if order.prev != nil {
		order.prev.next = order.next
	} else {
		l.head = order.next
	}
	if order.next != nil {
		order.next.prev = order.prev
	} else {
		l.tail = order.prev
	}

	order.next = nil
	order.prev = nil
}

// adjustVolume reflects a fill against a member order into the level's
// aggregate without touching the queue structure.
func (l *PriceLevel) adjustVolume(units uint64) {
	l.totalVolume -= units
}

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testNow() int64 { return 0 }

func newTestBook(t *testing.T, tickSize uint8) *Book {
	t.Helper()
	b, err := New(tickSize, testNow)
	assert.NoError(t, err)
	return b
}

func TestNew_TickSizeBoundaries(t *testing.T) {
	_, err := New(8, testNow)
	assert.NoError(t, err)

	_, err = New(9, testNow)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "Tick size too large. Must be [0, 8].", err.Error())
}

func TestSubmitLimit_RejectsZeroQuantityOrPrice(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Bid, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, _, err = b.SubmitLimit(Bid, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	assert.Equal(t, 0, b.Size())
}

// S1 -- Bid build-up.
func TestScenario_BidBuildUp(t *testing.T) {
	b := newTestBook(t, 2)

	for _, price := range []float64{80, 90, 100} {
		_, _, err := b.SubmitLimit(Bid, 1, b.ToTicks(price))
		assert.NoError(t, err)
	}

	assert.Equal(t, 3, b.Size())
	assert.Equal(t, int64(10000), b.InsideBidPrice())
	assert.Equal(t, uint64(1), b.InsideBidQuantity())
	assert.Equal(t, int64(0), b.InsideAskPrice())
}

// S2 -- Ask build-up.
func TestScenario_AskBuildUp(t *testing.T) {
	b := newTestBook(t, 2)

	for _, price := range []float64{80, 90, 100} {
		_, _, err := b.SubmitLimit(Ask, 1, b.ToTicks(price))
		assert.NoError(t, err)
	}

	assert.Equal(t, 3, b.Size())
	assert.Equal(t, int64(8000), b.InsideAskPrice())
	assert.Equal(t, uint64(1), b.InsideAskQuantity())
	assert.Equal(t, int64(0), b.InsideBidPrice())
}

// S3 -- Exact cross.
func TestScenario_ExactCross(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)

	_, trades, err := b.SubmitLimit(Ask, 10, b.ToTicks(100))
	assert.NoError(t, err)

	assert.Equal(t, 0, b.Size())
	assert.Equal(t, int64(0), b.InsideBidPrice())
	assert.Equal(t, int64(0), b.InsideAskPrice())
	assert.Len(t, trades, 1)
	assert.Equal(t, uint64(10), trades[0].Quantity)
	assert.Equal(t, int64(10000), trades[0].Price)
}

// S4 -- One ask sweeps two bids, submission order preserved.
func TestScenario_AskSweepsTwoBids(t *testing.T) {
	b := newTestBook(t, 2)

	bid1, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)
	bid2, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)

	_, trades, err := b.SubmitLimit(Ask, 20, b.ToTicks(100))
	assert.NoError(t, err)

	assert.Equal(t, 0, b.Size())
	assert.Len(t, trades, 2)
	assert.Equal(t, uint64(10), trades[0].Quantity)
	assert.Equal(t, uint64(10), trades[1].Quantity)
	assert.Equal(t, bid1.ID(), trades[0].MakerOrderID)
	assert.Equal(t, bid2.ID(), trades[1].MakerOrderID)
}

// S5 -- Partial rest.
func TestScenario_PartialRest(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)

	_, _, err = b.SubmitLimit(Ask, 20, b.ToTicks(100))
	assert.NoError(t, err)

	assert.Equal(t, 1, b.Size())
	assert.Equal(t, int64(0), b.InsideBidPrice())
	assert.Equal(t, int64(10000), b.InsideAskPrice())
	assert.Equal(t, uint64(10), b.InsideAskQuantity())
}

// S6 -- Price-time priority across levels.
func TestScenario_PriceTimePriorityAcrossLevels(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(80))
	assert.NoError(t, err)
	_, _, err = b.SubmitLimit(Bid, 10, b.ToTicks(90))
	assert.NoError(t, err)
	_, _, err = b.SubmitLimit(Bid, 15, b.ToTicks(90))
	assert.NoError(t, err)

	askOrder, trades, err := b.SubmitLimit(Ask, 40, b.ToTicks(90))
	assert.NoError(t, err)

	assert.Equal(t, 2, b.Size())
	assert.Equal(t, int64(8000), b.InsideBidPrice())
	assert.Equal(t, uint64(10), b.InsideBidQuantity())
	assert.Equal(t, int64(9000), b.InsideAskPrice())
	assert.Equal(t, uint64(15), b.InsideAskQuantity())

	assert.Len(t, trades, 2)
	assert.Equal(t, uint64(10), trades[0].Quantity)
	assert.Equal(t, uint64(15), trades[1].Quantity)

	assert.Equal(t, uint64(25), askOrder.FilledQuantity())
	assert.Equal(t, uint64(10*9000+15*9000), askOrder.FilledCost())
	assert.Equal(t, uint64(15), askOrder.OpenQuantity())
}

// S7 -- Tick-size rounding.
func TestScenario_TickSizeRounding(t *testing.T) {
	b2 := newTestBook(t, 2)
	assert.Equal(t, int64(10046), b2.ToTicks(100.4564))

	b4 := newTestBook(t, 4)
	assert.Equal(t, int64(1004564), b4.ToTicks(100.4564))
}

func TestCancel_TwiceReturnsFalseSecondTime(t *testing.T) {
	b := newTestBook(t, 2)
	order, _, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)

	assert.True(t, b.Cancel(order.ID()))
	assert.False(t, b.Cancel(order.ID()))
}

func TestCancel_UnknownIDIsNoop(t *testing.T) {
	b := newTestBook(t, 2)
	assert.False(t, b.Cancel(12345))
}

func TestSubmitAndCancelAll_ReturnsToEmptyState(t *testing.T) {
	b := newTestBook(t, 2)

	var ids []uint64
	prices := []float64{80, 85, 90, 95}
	for _, p := range prices {
		order, _, err := b.SubmitLimit(Bid, 5, b.ToTicks(p))
		assert.NoError(t, err)
		ids = append(ids, order.ID())
	}
	for _, p := range prices {
		order, _, err := b.SubmitLimit(Ask, 5, b.ToTicks(p+100))
		assert.NoError(t, err)
		ids = append(ids, order.ID())
	}

	assert.Equal(t, 8, b.Size())

	for _, id := range ids {
		assert.True(t, b.Cancel(id))
	}

	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.BidSide().Len())
	assert.Equal(t, 0, b.AskSide().Len())
	assert.Equal(t, int64(0), b.InsideBidPrice())
	assert.Equal(t, int64(0), b.InsideAskPrice())
}

func TestSubmitMarket_DiscardsResidual(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Ask, 5, b.ToTicks(100))
	assert.NoError(t, err)

	order, trades, err := b.SubmitMarket(Bid, 10)
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, uint64(5), order.FilledQuantity())
	assert.Equal(t, uint64(5), order.OpenQuantity())

	// Residual of 5 was never inserted.
	assert.Equal(t, 0, b.Size())
	_, ok := b.Lookup(order.ID())
	assert.False(t, ok)
}

func TestFullyFilledLimitOrder_NotInOrderIndex(t *testing.T) {
	b := newTestBook(t, 2)

	_, _, err := b.SubmitLimit(Ask, 10, b.ToTicks(100))
	assert.NoError(t, err)

	order, trades, err := b.SubmitLimit(Bid, 10, b.ToTicks(100))
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, uint64(0), order.OpenQuantity())

	_, ok := b.Lookup(order.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, b.Size())
}

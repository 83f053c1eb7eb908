// Package engine hosts one single-instrument internal/book.Book per
// supported asset type and adapts the wire-level common.Order/common.Trade
// representation to the core's ticks-based Order/Trade types. It is the
// multi-asset embedder spec.md anticipates wrapping the core for a
// networked deployment: each Book stays single-writer and
// single-instrument, exactly as the core requires.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fenrir/internal/book"
	"fenrir/internal/common"
)

// restingRecord remembers enough about a resting wire order to build
// execution reports once it later trades as the maker, and to translate a
// cancel-by-UUID request into the core's cancel-by-id call.
type restingRecord struct {
	coreOrder *book.Order
	wire      common.Order
}

// Engine owns one Book per AssetType and mediates between the wire protocol
// and the core matching algorithm.
type Engine struct {
	now func() int64

	books    map[common.AssetType]*book.Book
	registry map[common.AssetType]map[uint64]*restingRecord
	uuidToID map[common.AssetType]map[string]uint64

	reporter Reporter
}

// New constructs an Engine with one Book per asset, all at the given tick
// size. now supplies order timestamps (milliseconds since epoch); wall-clock
// timestamping is an external collaborator the core itself never calls
// directly.
func New(tickSize uint8, now func() int64, assets ...common.AssetType) (*Engine, error) {
	e := &Engine{
		now:      now,
		books:    make(map[common.AssetType]*book.Book, len(assets)),
		registry: make(map[common.AssetType]map[uint64]*restingRecord, len(assets)),
		uuidToID: make(map[common.AssetType]map[string]uint64, len(assets)),
	}

	for _, asset := range assets {
		bk, err := book.New(tickSize, now)
		if err != nil {
			return nil, fmt.Errorf("engine: constructing book for %v: %w", asset, err)
		}
		e.books[asset] = bk
		e.registry[asset] = make(map[uint64]*restingRecord)
		e.uuidToID[asset] = make(map[string]uint64)
	}

	return e, nil
}

// SetReporter wires the sink execution/error reports are delivered to.
func (e *Engine) SetReporter(r Reporter) { e.reporter = r }

func toBookSide(side common.Side) book.Side {
	if side == common.Buy {
		return book.Bid
	}
	return book.Ask
}

// PlaceOrder routes order to its asset's Book, runs the matcher, reports
// every resulting trade, and -- for a limit order with residual quantity --
// registers the order so it can later be cancelled by UUID or reported as a
// maker.
func (e *Engine) PlaceOrder(assetType common.AssetType, order common.Order) error {
	bk, ok := e.books[assetType]
	if !ok {
		return fmt.Errorf("engine: place order for %v: %w", assetType, ErrUnknownAsset)
	}

	order.ExchTimestamp = time.UnixMilli(e.now())
	side := toBookSide(order.Side)

	var (
		coreOrder *book.Order
		trades    []book.Trade
		err       error
	)
	switch order.OrderType {
	case common.LimitOrder:
		coreOrder, trades, err = bk.SubmitLimit(side, order.Quantity, bk.ToTicks(order.LimitPrice))
	case common.MarketOrder:
		coreOrder, trades, err = bk.SubmitMarket(side, order.Quantity)
	default:
		return fmt.Errorf("engine: place order: %w", ErrUnknownOrderType)
	}
	if err != nil {
		return fmt.Errorf("engine: place order: %w", err)
	}

	registry := e.registry[assetType]
	uuidIndex := e.uuidToID[assetType]

	for _, t := range trades {
		makerRec, ok := registry[t.MakerOrderID]
		if !ok {
			log.Error().
				Uint64("makerOrderID", t.MakerOrderID).
				Msg("engine: trade against unregistered maker order")
			continue
		}

		taker := order
		maker := makerRec.wire
		trade := common.Trade{
			Party:        &taker,
			CounterParty: &maker,
			Timestamp:    time.UnixMilli(e.now()),
			MatchQty:     t.Quantity,
			Price:        bk.PriceToFloat(t.Price),
		}
		if e.reporter != nil {
			if err := e.reporter.ReportTrade(trade); err != nil {
				log.Error().Err(err).Msg("engine: failed to report trade")
			}
		}

		if makerRec.coreOrder.OpenQuantity() == 0 {
			delete(registry, t.MakerOrderID)
			delete(uuidIndex, makerRec.wire.UUID)
		}
	}

	if order.OrderType == common.LimitOrder && coreOrder.OpenQuantity() > 0 {
		registry[coreOrder.ID()] = &restingRecord{coreOrder: coreOrder, wire: order}
		uuidIndex[order.UUID] = coreOrder.ID()
	}

	return nil
}

// CancelOrder cancels the resting order identified by uuid on assetType's
// book. Returns ErrUnknownOrder if no resting order is recorded under that
// UUID.
func (e *Engine) CancelOrder(assetType common.AssetType, uuid string) error {
	bk, ok := e.books[assetType]
	if !ok {
		return fmt.Errorf("engine: cancel order for %v: %w", assetType, ErrUnknownAsset)
	}

	uuidIndex := e.uuidToID[assetType]
	id, ok := uuidIndex[uuid]
	if !ok {
		return fmt.Errorf("engine: cancel order %s: %w", uuid, ErrUnknownOrder)
	}

	if !bk.Cancel(id) {
		return fmt.Errorf("engine: cancel order %s: %w", uuid, ErrUnknownOrder)
	}

	delete(e.registry[assetType], id)
	delete(uuidIndex, uuid)
	return nil
}

// LogBook emits a structured snapshot of every asset's inside quote and
// size. It is a debugging aid, not a core operation.
func (e *Engine) LogBook() {
	for asset, bk := range e.books {
		log.Info().
			Str("asset", asset.String()).
			Int64("insideBid", bk.InsideBidPrice()).
			Int64("insideAsk", bk.InsideAskPrice()).
			Uint64("insideBidQty", bk.InsideBidQuantity()).
			Uint64("insideAskQty", bk.InsideAskQuantity()).
			Int("size", bk.Size()).
			Msg("book snapshot")
	}
}

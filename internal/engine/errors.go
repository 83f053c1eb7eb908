package engine

import "errors"

var (
	// ErrUnknownAsset is returned when an operation targets an AssetType
	// the Engine was not configured with.
	ErrUnknownAsset = errors.New("unknown asset type")

	// ErrUnknownOrderType is returned for an order whose OrderType this
	// engine does not know how to route.
	ErrUnknownOrderType = errors.New("unknown order type")

	// ErrUnknownOrder is returned by CancelOrder for a UUID this engine has
	// no resting order recorded against.
	ErrUnknownOrder = errors.New("unknown order")
)

package engine

import "fenrir/internal/common"

// Reporter is the outbound side of the engine: whatever delivers execution
// and error reports to connected clients. internal/net.Server implements
// this over the TCP wire protocol.
type Reporter interface {
	ReportTrade(trade common.Trade) error
	ReportError(owner string, err error) error
}

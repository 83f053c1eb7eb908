package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"fenrir/internal/common"
	"fenrir/internal/engine"
	"fenrir/internal/net"
)

const defaultTickSize = 2

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	// Setup the matching engine and the TCP server that fronts it.
	eng, err := engine.New(defaultTickSize, now, common.Equities)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct engine")
	}

	srv := net.New("0.0.0.0", 9001, eng)
	eng.SetReporter(srv)

	go srv.Run(ctx)
	// Block on running the server.
	<-ctx.Done()
}

func now() int64 { return time.Now().UnixMilli() }

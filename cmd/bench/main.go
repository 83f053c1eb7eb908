// Command bench generates (or reuses) a synthetic order_data.txt and
// replays it against a fresh book.Book, printing the replay's wall-clock
// duration -- the Go equivalent of the original's benchmark.cpp harness.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog/log"

	"fenrir/internal/bench"
	"fenrir/internal/book"
)

func main() {
	path := flag.String("file", "order_data.txt", "order data file to generate/replay")
	numOrders := flag.Int("orders", 10000, "number of orders to generate if file does not exist")
	tickSize := flag.Uint("tick-size", 2, "book tick size (decimal digits of price precision)")
	seed := flag.Int64("seed", 1337, "rng seed for order generation")
	flag.Parse()

	if _, err := os.Stat(*path); os.IsNotExist(err) {
		log.Info().Str("file", *path).Int("orders", *numOrders).Msg("order file does not exist, generating")
		rng := rand.New(rand.NewSource(*seed))
		if err := bench.GenerateOrderFile(*path, *numOrders, rng); err != nil {
			log.Fatal().Err(err).Msg("failed to generate order file")
		}
	}

	orders, err := bench.LoadOrderFile(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load order file")
	}

	b, err := book.New(uint8(*tickSize), func() int64 { return 0 })
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct book")
	}

	dur, err := bench.Replay(b, orders)
	if err != nil {
		log.Fatal().Err(err).Msg("replay failed")
	}

	fmt.Printf("Time take: %dms \n", dur.Milliseconds())
}

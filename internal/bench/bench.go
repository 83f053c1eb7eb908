// Package bench generates and replays synthetic order streams against a
// book.Book, the Go equivalent of the original's generate.cpp/benchmark.cpp
// pair: write a reproducible order_data.txt once, then replay it against the
// matching engine under timing, so a run is insulated from both the RNG and
// compiler optimizations moving between runs.
package bench

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fenrir/internal/book"
)

// BenchOrder is a single parsed line of order_data.txt: side, price, and
// quantity, in submission order.
type BenchOrder struct {
	IsBid    bool
	Price    decimal.Decimal
	Quantity uint64
}

// GenerateOrderFile writes n lines of "<is_bid> <price> <quantity>" to path,
// alternating side by position the way generate.cpp's `i % 2 == 0` does, so
// a run is reproducible given the same rng seed.
func GenerateOrderFile(path string, n int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: creating order file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		isBid := i%2 == 0
		price := decimal.NewFromInt(int64(1 + rng.Intn(10))).Mul(decimal.NewFromFloat(1.34))
		quantity := (rng.Intn(10) + 1) * 100

		bidFlag := 0
		if isBid {
			bidFlag = 1
		}
		if _, err := fmt.Fprintf(w, "%d %s %d\n", bidFlag, price.String(), quantity); err != nil {
			return fmt.Errorf("bench: writing order file: %w", err)
		}
	}

	return w.Flush()
}

// LoadOrderFile parses order_data.txt into a slice of BenchOrder, in file
// order. A malformed line is a hard error -- this is test fixture data, not
// a network input that deserves to be skipped and kept going.
func LoadOrderFile(path string) ([]BenchOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: opening order file: %w", err)
	}
	defer f.Close()

	var orders []BenchOrder
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("bench: line %d: %w", lineNo, ErrMalformedLine)
		}

		isBid := fields[0] == "1"

		price, err := decimal.NewFromString(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bench: line %d: parsing price: %w", lineNo, err)
		}

		quantity, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bench: line %d: parsing quantity: %w", lineNo, err)
		}

		orders = append(orders, BenchOrder{IsBid: isBid, Price: price, Quantity: quantity})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bench: reading order file: %w", err)
	}

	return orders, nil
}

// Replay submits every order in orders as a limit order against book,
// returning the wall-clock duration of the whole run. Order rejections
// (zero quantity, non-positive price) abort the replay -- a benchmark fixture
// is expected to be clean.
func Replay(b *book.Book, orders []BenchOrder) (time.Duration, error) {
	start := time.Now()

	for i, o := range orders {
		side := book.Ask
		if o.IsBid {
			side = book.Bid
		}

		price, _ := o.Price.Float64()
		if _, _, err := b.SubmitLimit(side, o.Quantity, b.ToTicks(price)); err != nil {
			return 0, fmt.Errorf("bench: replaying order %d: %w", i, err)
		}
	}

	return time.Since(start), nil
}

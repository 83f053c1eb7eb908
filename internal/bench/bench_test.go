package bench

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"fenrir/internal/book"
)

func TestGenerateLoadReplay_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order_data.txt")
	rng := rand.New(rand.NewSource(7))

	assert.NoError(t, GenerateOrderFile(path, 50, rng))

	orders, err := LoadOrderFile(path)
	assert.NoError(t, err)
	assert.Len(t, orders, 50)

	for i, o := range orders {
		assert.Equal(t, i%2 == 0, o.IsBid)
		assert.True(t, o.Price.IsPositive())
		assert.Greater(t, o.Quantity, uint64(0))
	}

	b, err := book.New(2, func() int64 { return 0 })
	assert.NoError(t, err)

	dur, err := Replay(b, orders)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, dur.Nanoseconds(), int64(0))
}

func TestLoadOrderFile_RejectsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order_data.txt")
	assert.NoError(t, os.WriteFile(path, []byte("1 10.00\n"), 0o644))

	_, err := LoadOrderFile(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestLoadOrderFile_MissingFileErrors(t *testing.T) {
	_, err := LoadOrderFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

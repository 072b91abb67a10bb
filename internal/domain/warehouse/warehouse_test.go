package warehouse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStockAndStock(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")

	require.NoError(t, w.SetStock("SMX-001", 10))
	assert.Equal(t, 10, w.Stock("SMX-001"))

	// absolute overwrite, prior value irrelevant
	require.NoError(t, w.SetStock("SMX-001", 3))
	assert.Equal(t, 3, w.Stock("SMX-001"))
}

func TestStock_UnknownSKUIsZero(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	assert.Equal(t, 0, w.Stock("NOPE"))
}

func TestSetStock_NegativeRejected(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	assert.ErrorIs(t, w.SetStock("SMX-001", -1), ErrNegativeQuantity)
}

func TestReserve(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	require.NoError(t, w.SetStock("SMX-001", 5))

	require.NoError(t, w.Reserve("SMX-001", 3))
	assert.Equal(t, 2, w.Stock("SMX-001"))
}

func TestReserve_InsufficientLeavesStockUntouched(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	require.NoError(t, w.SetStock("SMX-001", 5))

	err := w.Reserve("SMX-001", 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, w.Stock("SMX-001"))
}

func TestReserve_InvalidQuantity(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	assert.ErrorIs(t, w.Reserve("SMX-001", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, w.Reserve("SMX-001", -2), ErrInvalidQuantity)
}

func TestRelease_HasNoUpperBound(t *testing.T) {
	w := New("w1", "WH-A", "Almaty")
	require.NoError(t, w.SetStock("SMX-001", 1))

	// compensation may inflate stock beyond any level ever set
	require.NoError(t, w.Release("SMX-001", 100))
	assert.Equal(t, 101, w.Stock("SMX-001"))
}

func TestReserve_ConcurrentNoOversell(t *testing.T) {
	const stock = 50
	const callers = 200

	w := New("w1", "WH-A", "Almaty")
	require.NoError(t, w.SetStock("SMX-001", stock))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Reserve("SMX-001", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, 0, w.Stock("SMX-001"))
}

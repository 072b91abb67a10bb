package inventory

import (
	"context"
	"testing"

	"github.com/oaktree-io/storefront/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoWarehouses(t *testing.T) (*Service, *warehouse.Warehouse, *warehouse.Warehouse) {
	t.Helper()
	svc := NewService(nil)
	whA := warehouse.New("w1", "WH-A", "Almaty")
	whB := warehouse.New("w2", "WH-B", "Nur-Sultan")
	require.NoError(t, whA.SetStock("SMX-001", 10))
	require.NoError(t, whB.SetStock("SMX-001", 5))
	svc.AddWarehouse(whA)
	svc.AddWarehouse(whB)
	return svc, whA, whB
}

func TestReserve_FirstFit(t *testing.T) {
	svc, whA, whB := twoWarehouses(t)

	require.NoError(t, svc.Reserve(context.Background(), "SMX-001", 8))

	assert.Equal(t, 2, whA.Stock("SMX-001"))
	assert.Equal(t, 5, whB.Stock("SMX-001"))
}

func TestReserve_SkipsToNextWarehouse(t *testing.T) {
	svc, whA, whB := twoWarehouses(t)

	// 12 exceeds WH-A, fits nowhere; 4 exceeds nothing in WH-A
	require.NoError(t, svc.Reserve(context.Background(), "SMX-001", 10))
	require.NoError(t, svc.Reserve(context.Background(), "SMX-001", 4))

	assert.Equal(t, 0, whA.Stock("SMX-001"))
	assert.Equal(t, 1, whB.Stock("SMX-001"))
}

func TestReserve_NoSplitAcrossWarehouses(t *testing.T) {
	svc, whA, whB := twoWarehouses(t)

	// combined stock is 15 but no single warehouse holds 12
	err := svc.Reserve(context.Background(), "SMX-001", 12)
	assert.ErrorIs(t, err, ErrNoWarehouse)

	assert.Equal(t, 10, whA.Stock("SMX-001"))
	assert.Equal(t, 5, whB.Stock("SMX-001"))
	assert.Equal(t, 15, svc.TotalStock("SMX-001"))
}

func TestRelease_GoesToFirstWarehouse(t *testing.T) {
	svc, whA, whB := twoWarehouses(t)

	// released stock lands in the first-registered warehouse even if it was
	// reserved elsewhere
	require.NoError(t, svc.Reserve(context.Background(), "SMX-001", 10))
	require.NoError(t, svc.Reserve(context.Background(), "SMX-001", 5)) // debits WH-B
	require.NoError(t, svc.Release(context.Background(), "SMX-001", 5))

	assert.Equal(t, 5, whA.Stock("SMX-001"))
	assert.Equal(t, 0, whB.Stock("SMX-001"))
}

func TestRelease_NoWarehouses(t *testing.T) {
	svc := NewService(nil)
	assert.ErrorIs(t, svc.Release(context.Background(), "SMX-001", 1), ErrNoWarehouse)
}

func TestTotalStock(t *testing.T) {
	svc, _, _ := twoWarehouses(t)
	assert.Equal(t, 15, svc.TotalStock("SMX-001"))
	assert.Equal(t, 0, svc.TotalStock("UNKNOWN"))
}

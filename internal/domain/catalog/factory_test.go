package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return "id-" + string(rune('0'+s.n))
}

func TestPhysicalFactory(t *testing.T) {
	f := NewPhysicalFactory(&seqIDs{})
	p, err := f.Create(ProductSpec{
		Name:        "Smartphone X",
		Description: "Flagship smartphone",
		Price:       decimal.RequireFromString("450.00"),
		SKU:         "SMX-001",
	})
	require.NoError(t, err)
	assert.False(t, p.Digital)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "SMX-001", p.SKU)
}

func TestDigitalFactory_DefaultsDescription(t *testing.T) {
	f := NewDigitalFactory(&seqIDs{})
	p, err := f.Create(ProductSpec{
		Name:  "Ebook",
		Price: decimal.RequireFromString("19.99"),
		SKU:   "EB-001",
	})
	require.NoError(t, err)
	assert.True(t, p.Digital)
	assert.Equal(t, "(digital)", p.Description)
}

func TestFactory_Validation(t *testing.T) {
	f := NewPhysicalFactory(&seqIDs{})

	_, err := f.Create(ProductSpec{Name: "x", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrMissingSKU)

	_, err = f.Create(ProductSpec{SKU: "A", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = f.Create(ProductSpec{SKU: "A", Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalog_SKUUniqueness(t *testing.T) {
	cat := NewCatalog()
	f := NewPhysicalFactory(&seqIDs{})

	p1, err := f.Create(ProductSpec{Name: "a", SKU: "SKU-1", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	p2, err := f.Create(ProductSpec{Name: "b", SKU: "SKU-1", Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	require.NoError(t, cat.Add(p1))
	assert.ErrorIs(t, cat.Add(p2), ErrDuplicateSKU)

	got, err := cat.BySKU("SKU-1")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, got.ID)

	_, err = cat.BySKU("SKU-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

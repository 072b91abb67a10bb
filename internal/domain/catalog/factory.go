package catalog

import "github.com/shopspring/decimal"

// IDGenerator supplies identifiers for newly created products so that
// construction stays deterministic under test.
type IDGenerator interface {
	NewID() string
}

// ProductSpec carries the attributes common to every product kind.
type ProductSpec struct {
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
	Category    Category
}

// Factory builds products of a particular kind from a common spec.
type Factory interface {
	Create(spec ProductSpec) (*Product, error)
}

type PhysicalFactory struct {
	ids IDGenerator
}

func NewPhysicalFactory(ids IDGenerator) *PhysicalFactory {
	return &PhysicalFactory{ids: ids}
}

func (f *PhysicalFactory) Create(spec ProductSpec) (*Product, error) {
	return newProduct(f.ids.NewID(), spec, false)
}

type DigitalFactory struct {
	ids IDGenerator
}

func NewDigitalFactory(ids IDGenerator) *DigitalFactory {
	return &DigitalFactory{ids: ids}
}

func (f *DigitalFactory) Create(spec ProductSpec) (*Product, error) {
	if spec.Description == "" {
		spec.Description = "(digital)"
	}
	return newProduct(f.ids.NewID(), spec, true)
}

func newProduct(id string, spec ProductSpec, digital bool) (*Product, error) {
	if spec.SKU == "" {
		return nil, ErrMissingSKU
	}
	if spec.Name == "" {
		return nil, ErrMissingName
	}
	if spec.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return &Product{
		ID:          id,
		Name:        spec.Name,
		Description: spec.Description,
		Price:       spec.Price,
		SKU:         spec.SKU,
		Category:    spec.Category,
		Digital:     digital,
	}, nil
}

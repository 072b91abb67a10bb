package id

import "github.com/google/uuid"

// UUIDGenerator issues random UUIDv4 identifiers. It satisfies the
// IDGenerator ports declared across the application and domain layers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (*UUIDGenerator) NewID() string { return uuid.NewString() }

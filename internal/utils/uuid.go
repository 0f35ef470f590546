package utils

import "github.com/google/uuid"

// IDGenerator issues record identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator issues time ordered UUIDv7 identifiers so that records sort
// by creation time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

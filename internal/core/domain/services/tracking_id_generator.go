package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

const trackingSuffixBytes = 3

// TrackingIDGenerator builds tracking identifiers from the current UTC day and
// three cryptographically random bytes.
//
// Example usage:
//
//	gen := services.NewTrackingIDGenerator()
//	id, err := gen.Generate() // PRCL-20240115-AB12CD
type TrackingIDGenerator struct {
	now    func() time.Time
	random io.Reader
}

// NewTrackingIDGenerator returns a generator reading crypto/rand and the wall clock.
func NewTrackingIDGenerator() *TrackingIDGenerator {
	return NewTrackingIDGeneratorWith(time.Now, rand.Reader)
}

// NewTrackingIDGeneratorWith lets tests pin the clock and the random source.
func NewTrackingIDGeneratorWith(now func() time.Time, random io.Reader) *TrackingIDGenerator {
	return &TrackingIDGenerator{now: now, random: random}
}

// Generate returns a fresh identifier. It only fails when the random source
// does, and that failure carries no error kind.
func (g *TrackingIDGenerator) Generate() (kernel.TrackingID, error) {
	buf := make([]byte, trackingSuffixBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return kernel.TrackingID{}, fmt.Errorf("read tracking id suffix: %w", err)
	}

	value := fmt.Sprintf("%s-%s-%s",
		kernel.TrackingIDPrefix,
		g.now().UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(buf)),
	)
	return kernel.NewTrackingID(value)
}

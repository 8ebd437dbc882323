package code

import (
	"fmt"
	"sync/atomic"

	"lagoon/shared/timezone"
)

const suffixModulo = 1_000_000

// Generator issues human-readable record codes such as BK483920.
// The suffix comes from an atomic counter seeded from the clock, so two
// records created in the same millisecond still get distinct codes.
type Generator interface {
	Next(prefix string) string
}

type generator struct {
	counter atomic.Uint64
}

func New() Generator {
	gen := &generator{}
	gen.counter.Store(uint64(timezone.Now().UnixMilli()))

	return gen
}

func (g *generator) Next(prefix string) string {
	return fmt.Sprintf("%s%06d", prefix, g.counter.Add(1)%suffixModulo)
}

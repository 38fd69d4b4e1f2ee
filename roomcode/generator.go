// Package roomcode issues session identifiers.
package roomcode

import (
	"math/rand/v2"
	"strconv"
)

const (
	// Codes are 10 decimal digits, drawn uniformly from [10^9, 10^10).
	// Previously issued codes are not tracked, so collision with a still
	// active session is possible but negligible at this scale.
	codeMin  = 1_000_000_000
	codeSpan = 9_000_000_000
)

// Generator produces room codes. The random source is injectable so tests
// can pin the sequence.
type Generator struct {
	intN func(n int64) int64
}

func New() *Generator {
	return &Generator{intN: rand.Int64N}
}

func NewWithSource(r *rand.Rand) *Generator {
	return &Generator{intN: r.Int64N}
}

// Generate returns a fixed-length numeric code. No side effects.
func (g *Generator) Generate() string {
	return strconv.FormatInt(codeMin+g.intN(codeSpan), 10)
}

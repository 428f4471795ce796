package ingest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var ErrCodeSpaceExhausted = errors.New("unit code generation exhausted retries")

// CodeGenerator mints externally shareable unit codes (KPU-XXXXXX). The
// store is queried for each candidate; MaxAttempts bounds the loop so a
// degenerate store cannot spin it forever. True uniqueness is enforced by
// the store's constraint — see ErrCodeConflict.
type CodeGenerator struct {
	Prefix      string
	Alphabet    string
	Length      int
	MaxAttempts int
	rng         *rand.Rand
}

func NewCodeGenerator(prefix, alphabet string, length, maxAttempts int) *CodeGenerator {
	return &CodeGenerator{
		Prefix:      prefix,
		Alphabet:    alphabet,
		Length:      length,
		MaxAttempts: maxAttempts,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededCodeGenerator fixes the random source, for tests.
func NewSeededCodeGenerator(prefix, alphabet string, length, maxAttempts int, seed int64) *CodeGenerator {
	g := NewCodeGenerator(prefix, alphabet, length, maxAttempts)
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

func (g *CodeGenerator) candidate() string {
	b := make([]byte, g.Length)
	for i := range b {
		b[i] = g.Alphabet[g.rng.Intn(len(g.Alphabet))]
	}
	return g.Prefix + string(b)
}

// Generate returns a code unused by the store at the time of the check.
func (g *CodeGenerator) Generate(ctx context.Context, store ComplaintStore) (string, error) {
	for i := 0; i < g.MaxAttempts; i++ {
		code := g.candidate()
		taken, err := store.ExistsUnitCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check unit code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

package multipart

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// BoundaryLength is the number of characters in a generated boundary.
const BoundaryLength = 32

const boundaryAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// lockedRand guards the default generator, which is shared by every
// NewBuilder call in the process.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

var defaultRand = &lockedRand{
	r: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
}

func (l *lockedRand) boundary() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return generateBoundary(l.r)
}

func generateBoundary(r *rand.Rand) string {
	b := make([]byte, BoundaryLength)
	for i := range b {
		b[i] = boundaryAlphabet[r.Intn(len(boundaryAlphabet))]
	}
	return string(b)
}

// validateBoundary allows the characters of rfc2046#section-5.1.1 that are
// also token characters (rfc2045#section-5.1): the boundary is advertised
// unquoted in the Content-Type header.
func validateBoundary(boundary string) error {
	if len(boundary) < 1 || len(boundary) > 70 {
		return errors.Errorf("invalid boundary length: %d", len(boundary))
	}
	for _, c := range boundary {
		if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
			continue
		}
		switch c {
		case '\'', '+', '_', '-', '.':
			continue
		}
		return errors.Errorf("invalid boundary character: %q", c)
	}
	return nil
}

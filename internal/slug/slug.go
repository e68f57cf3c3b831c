package slug

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
)

const (
	// Alphabet is the character set for generated slugs
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// DefaultLength is the default generated slug length
	DefaultLength = 6
	// DefaultMaxAttempts bounds the collision probe loop
	DefaultMaxAttempts = 20
	// attemptsPerLength is how many collisions are tolerated before
	// widening the keyspace by one character
	attemptsPerLength = 10
	// MaxLength is the maximum slug length accepted anywhere
	MaxLength = 100
)

// ErrExhausted is returned when the generator gives up after the
// configured number of attempts
var ErrExhausted = errors.New("slug space exhausted")

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// IsValid reports whether s is a well-formed slug:
// 1-100 characters drawn from letters, digits, hyphen and underscore.
func IsValid(s string) bool {
	return slugPattern.MatchString(s)
}

// ExistsFunc probes whether a candidate slug is already taken
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Generator produces random slugs and checks them against a store.
// On repeated collisions it trades slug length for collision avoidance
// instead of retrying indefinitely at a fixed length.
type Generator struct {
	length      int
	maxAttempts int
	exists      ExistsFunc
}

// NewGenerator creates a new Generator. Zero values fall back to defaults.
func NewGenerator(length, maxAttempts int, exists ExistsFunc) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		length:      length,
		maxAttempts: maxAttempts,
		exists:      exists,
	}
}

// Generate returns a slug that was unused at probe time.
// The candidate length grows by one character for every ten failed
// attempts; after maxAttempts total attempts it returns ErrExhausted.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		length := g.length + attempt/attemptsPerLength

		candidate, err := random(length)
		if err != nil {
			return "", fmt.Errorf("failed to draw random slug: %w", err)
		}

		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrExhausted
}

// random draws n characters uniformly from Alphabet. Bytes at or
// above the largest multiple of len(Alphabet) are rejected and
// redrawn; reducing them modulo 62 would skew the first 8 characters.
func random(n int) (string, error) {
	// 248 for the 62-character alphabet
	limit := byte(256 - 256%len(Alphabet))

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, c := range buf {
			if c >= limit {
				continue
			}
			out = append(out, Alphabet[int(c)%len(Alphabet)])
			if len(out) == n {
				return string(out), nil
			}
		}
	}
}

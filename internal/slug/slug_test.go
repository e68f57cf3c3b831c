package slug

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want bool
	}{
		{"simple lowercase", "demo", true},
		{"mixed case with digits", "aB3xZ9", true},
		{"hyphen and underscore", "my-link_2", true},
		{"single character", "x", true},
		{"max length", strings.Repeat("a", 100), true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 101), false},
		{"space", "my link", false},
		{"slash", "a/b", false},
		{"percent encoding", "a%20b", false},
		{"unicode", "héllo", false},
		{"dot", "a.b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.slug))
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a free slug on first attempt", func(t *testing.T) {
		gen := NewGenerator(6, 20, func(ctx context.Context, s string) (bool, error) {
			return false, nil
		})

		got, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 6)
		assert.True(t, IsValid(got))
	})

	t.Run("generated slugs use the configured alphabet", func(t *testing.T) {
		gen := NewGenerator(6, 20, func(ctx context.Context, s string) (bool, error) {
			return false, nil
		})

		for i := 0; i < 50; i++ {
			got, err := gen.Generate(ctx)
			require.NoError(t, err)
			for _, c := range got {
				assert.Contains(t, Alphabet, string(c))
			}
		}
	})

	t.Run("escalates to length 7 after ten collisions", func(t *testing.T) {
		// Simulate a saturated length-6 keyspace: every 6-char probe
		// collides, any longer candidate is free.
		var attempts int
		gen := NewGenerator(6, 20, func(ctx context.Context, s string) (bool, error) {
			attempts++
			return len(s) == 6, nil
		})

		got, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 7)
		assert.Equal(t, 11, attempts)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		var attempts int
		gen := NewGenerator(6, 20, func(ctx context.Context, s string) (bool, error) {
			attempts++
			return true, nil
		})

		_, err := gen.Generate(ctx)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, 20, attempts)
	})

	t.Run("propagates probe errors", func(t *testing.T) {
		probeErr := errors.New("store down")
		gen := NewGenerator(6, 20, func(ctx context.Context, s string) (bool, error) {
			return false, probeErr
		})

		_, err := gen.Generate(ctx)
		assert.ErrorIs(t, err, probeErr)
	})

	t.Run("draws characters uniformly across the alphabet", func(t *testing.T) {
		// Reducing raw bytes modulo 62 would favor the first
		// 256%62 = 8 alphabet characters by a factor of 5/4. Compare
		// the average count of those characters against the rest;
		// with 200k draws the two averages agree within a few percent
		// only under a uniform draw.
		const draws = 200_000
		s, err := random(draws)
		require.NoError(t, err)

		counts := make(map[rune]int, len(Alphabet))
		for _, c := range s {
			counts[c]++
		}

		var firstEight, rest float64
		for i, c := range Alphabet {
			if i < 8 {
				firstEight += float64(counts[c])
			} else {
				rest += float64(counts[c])
			}
		}
		firstEight /= 8
		rest /= float64(len(Alphabet) - 8)

		ratio := firstEight / rest
		assert.InDelta(t, 1.0, ratio, 0.08, "first 8 alphabet characters overrepresented: ratio %.3f", ratio)
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		gen := NewGenerator(0, 0, func(ctx context.Context, s string) (bool, error) {
			return false, nil
		})

		got, err := gen.Generate(ctx)
		require.NoError(t, err)
		assert.Len(t, got, DefaultLength)
	})
}

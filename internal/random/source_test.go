package random

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFixedLength(t *testing.T) {
	src := New(1)
	for i := 0; i < 200; i++ {
		s, err := src.String("abc", 5, 5)
		require.NoError(t, err)
		require.Len(t, s, 5)
		for _, r := range s {
			assert.Contains(t, "abc", string(r))
		}
	}
}

func TestStringLengthWithinBounds(t *testing.T) {
	src := New(2)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		s, err := src.String(UpperAlnum, 2, 4)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(s), 2)
		require.LessOrEqual(t, len(s), 4)
		seen[len(s)] = true
	}
	assert.Len(t, seen, 3, "every length in the range should be drawn")
}

func TestInvalidRanges(t *testing.T) {
	src := New(3)

	tests := []struct {
		name string
		call func() error
	}{
		{"inverted string", func() error { _, err := src.String("abc", 5, 4); return err }},
		{"negative string", func() error { _, err := src.String("abc", -1, 4); return err }},
		{"empty alphabet", func() error { _, err := src.String("", 1, 4); return err }},
		{"inverted integer", func() error { _, err := src.Integer(10, 1); return err }},
		{"inverted decimal", func() error { _, err := src.Decimal(2, 1, 2); return err }},
		{"negative digits", func() error { _, err := src.Decimal(1, 2, -1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRange))

			var rangeErr *RangeError
			assert.True(t, errors.As(err, &rangeErr))
		})
	}
}

func TestEmptyAlphabetZeroLength(t *testing.T) {
	s, err := New(4).String("", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestIntegerInclusiveBounds(t *testing.T) {
	src := New(5)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n, err := src.Integer(1, 3)
		require.NoError(t, err)
		require.True(t, n >= 1 && n <= 3, "got %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, 3)

	n, err := src.Integer(7, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestIntegerFullWidthRanges(t *testing.T) {
	src := New(9)

	tests := []struct {
		name     string
		min, max int
	}{
		{"zero to max", 0, math.MaxInt},
		{"min to max", math.MinInt, math.MaxInt},
		{"min to zero", math.MinInt, 0},
		{"max only", math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				n, err := src.Integer(tt.min, tt.max)
				require.NoError(t, err)
				require.True(t, n >= tt.min && n <= tt.max, "got %d", n)
			}
		})
	}
}

func TestDecimalRounding(t *testing.T) {
	src := New(6)
	low, high := decimal.NewFromFloat(0.5), decimal.NewFromInt(100)
	for i := 0; i < 500; i++ {
		d, err := src.Decimal(0.5, 100, 2)
		require.NoError(t, err)
		assert.True(t, d.GreaterThanOrEqual(low) && d.LessThanOrEqual(high), "got %s", d)
		assert.LessOrEqual(t, -d.Exponent(), int32(2), "got %s", d)
	}
}

func TestTimestampKeepsDate(t *testing.T) {
	src := New(7)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		ts := src.Timestamp(date)
		y, m, d := ts.Date()
		require.Equal(t, 2024, y)
		require.Equal(t, time.March, m)
		require.Equal(t, 5, d)
		require.Zero(t, ts.Nanosecond())
	}
}

func TestUUIDIsVersion4AndSeeded(t *testing.T) {
	a, err := New(8).UUID()
	require.NoError(t, err)
	b, err := New(8).UUID()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.EqualValues(t, 4, a.Version())
	assert.Equal(t, strings.ToLower(a.String()), a.String())
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		x, _ := a.String(LowerText, 1, 30)
		y, _ := b.String(LowerText, 1, 30)
		require.Equal(t, x, y)
	}
	assert.EqualValues(t, 42, a.Seed())
}

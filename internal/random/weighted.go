package random

import "fmt"

// Choice is a value with its relative weight in a Table.
type Choice[T any] struct {
	Value  T
	Weight int
}

// Table is a discrete distribution over a fixed set of values.
type Table[T any] struct {
	choices []Choice[T]
	total   int
}

// NewTable builds a Table from choices. It panics if a weight is not
// positive or no choice is given; tables are declared as package literals.
func NewTable[T any](choices ...Choice[T]) Table[T] {
	if len(choices) == 0 {
		panic("random: empty table")
	}
	total := 0
	for _, c := range choices {
		if c.Weight <= 0 {
			panic(fmt.Sprintf("random: non-positive weight %d for %v", c.Weight, c.Value))
		}
		total += c.Weight
	}
	return Table[T]{choices: choices, total: total}
}

// Uniform builds a Table giving every value weight 1.
func Uniform[T any](values ...T) Table[T] {
	choices := make([]Choice[T], len(values))
	for i, v := range values {
		choices[i] = Choice[T]{Value: v, Weight: 1}
	}
	return NewTable(choices...)
}

// Pick draws one value from the table.
func (t Table[T]) Pick(s *Source) T {
	n := s.rng.IntN(t.total)
	for _, c := range t.choices {
		if n < c.Weight {
			return c.Value
		}
		n -= c.Weight
	}
	return t.choices[len(t.choices)-1].Value
}

// Choices returns a copy of the table's entries.
func (t Table[T]) Choices() []Choice[T] {
	out := make([]Choice[T], len(t.choices))
	copy(out, t.choices)
	return out
}

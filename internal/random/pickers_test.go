package random

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRespectsWeights(t *testing.T) {
	table := NewTable(Choice[string]{"never", 1}, Choice[string]{"mostly", 99})
	src := New(9)

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[table.Pick(src)]++
	}
	assert.Greater(t, counts["mostly"], 9500)
	assert.Equal(t, 10000, counts["mostly"]+counts["never"])
}

func TestTableChoicesReturnsCopy(t *testing.T) {
	assert.Equal(t, []Choice[string]{
		{"EUR", 3}, {"USD", 3}, {"GBP", 1}, {"CHF", 1}, {"JPY", 1},
	}, currencyTable.Choices())

	weights := map[int]int{}
	for _, c := range discountTable.Choices() {
		weights[c.Value] = c.Weight
	}
	assert.Equal(t, map[int]int{0: 10, 5: 2, 10: 1, 15: 1, 20: 1}, weights)

	choices := taxTable.Choices()
	choices[0].Value = 99
	assert.Equal(t, 0, taxTable.Choices()[0].Value)
}

func TestNewTablePanicsOnBadWeight(t *testing.T) {
	assert.Panics(t, func() { NewTable(Choice[int]{1, 0}) })
	assert.Panics(t, func() { NewTable[int]() })
}

func TestTax(t *testing.T) {
	src := New(10)
	for i := 0; i < 200; i++ {
		tax := src.Tax()
		require.Contains(t, []int{0, 15, 20, 25}, tax.Pct)
		assert.Equal(t, fmt.Sprintf("VAT%d", tax.Pct), tax.Code)
		assert.Equal(t, fmt.Sprintf("%d%% VAT", tax.Pct), tax.Description)
	}
}

func TestProduct(t *testing.T) {
	src := New(11)
	for i := 0; i < 200; i++ {
		p, err := src.Product()
		require.NoError(t, err)
		require.True(t, p.Number >= 1 && p.Number <= ProductMax)
		assert.Len(t, p.Code, 5)
		assert.Equal(t, fmt.Sprintf("P%04d", p.Number), p.Code)
		assert.Equal(t, strings.Repeat(p.Code, 20), p.Description)
	}
}

func TestCategoricalPickersStayInTables(t *testing.T) {
	src := New(12)
	for i := 0; i < 200; i++ {
		assert.Contains(t, []string{"CR", "DR"}, src.CRDR())
		assert.Contains(t, []string{"EUR", "USD", "GBP", "CHF", "JPY"}, src.CurrencyCode())
		assert.Contains(t, []int{0, 5, 10, 15, 20}, src.DiscountPct())
		assert.NotEmpty(t, src.Country())
	}
}

func TestDiscountMostlyZero(t *testing.T) {
	src := New(13)
	zero := 0
	for i := 0; i < 3000; i++ {
		if src.DiscountPct() == 0 {
			zero++
		}
	}
	// weight 10 of 15
	assert.InDelta(t, 2000, zero, 200)
}

package random

import (
	"fmt"
	"strings"
)

// ProductMax is the highest product number drawn by Product.
const ProductMax = 2000

var (
	crdrTable = Uniform("CR", "DR")

	currencyTable = NewTable(
		Choice[string]{"EUR", 3},
		Choice[string]{"USD", 3},
		Choice[string]{"GBP", 1},
		Choice[string]{"CHF", 1},
		Choice[string]{"JPY", 1},
	)

	countryTable = Uniform(
		"France", "Italy", "Spain", "Germany", "Netherlands", "Belgium",
		"Switzerland", "Portugal", "Poland", "Norway", "Denmark", "Sweden",
		"Finland", "Czechia", "Austria", "United Kingdom", "United States", "Japan",
	)

	taxTable = Uniform(0, 15, 20, 25)

	discountTable = NewTable(
		Choice[int]{0, 10},
		Choice[int]{5, 2},
		Choice[int]{10, 1},
		Choice[int]{15, 1},
		Choice[int]{20, 1},
	)
)

// Tax is a VAT rate with its derived code and description.
type Tax struct {
	Pct         int
	Code        string
	Description string
}

// Product is a catalogue entry.
type Product struct {
	Number      int
	Code        string
	Description string
}

// CRDR returns "CR" or "DR".
func (s *Source) CRDR() string {
	return crdrTable.Pick(s)
}

// CurrencyCode returns an ISO currency code, EUR and USD being the most common.
func (s *Source) CurrencyCode() string {
	return currencyTable.Pick(s)
}

// Country returns a country name.
func (s *Source) Country() string {
	return countryTable.Pick(s)
}

// Tax returns a VAT rate.
func (s *Source) Tax() Tax {
	pct := taxTable.Pick(s)
	return Tax{
		Pct:         pct,
		Code:        fmt.Sprintf("VAT%d", pct),
		Description: fmt.Sprintf("%d%% VAT", pct),
	}
}

// DiscountPct returns a discount percentage; two thirds of the draws are 0.
func (s *Source) DiscountPct() int {
	return discountTable.Pick(s)
}

// Product returns a product numbered in [1, ProductMax]. The description
// repeats the code 20 times to pad the document size.
func (s *Source) Product() (Product, error) {
	n, err := s.Integer(1, ProductMax)
	if err != nil {
		return Product{}, err
	}
	code := fmt.Sprintf("P%04d", n)
	return Product{
		Number:      n,
		Code:        code,
		Description: strings.Repeat(code, 20),
	}, nil
}

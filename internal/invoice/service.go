// Package invoice builds fake invoice documents and assembles them into
// newline-delimited JSON file content.
//
// Amount rules for every line:
//   - base_amount     = round(quantity * unit_price, 2)
//   - discount_amount = round(base_amount * (100 - discount_pct) / 100, 2)
//   - tax_amount      = round(discount_amount * tax_pct / 100, 2)
//   - net_amount      = discount_amount + tax_amount
//
// Rounding is half-to-even and is applied at each step. Totals are sums of
// the rounded line values, and each tax line sums the line tax amounts of
// one tax code in first-seen order.
package invoice

import (
	"time"

	"invoicegen/pkg/models"
)

// Due dates fall this many days after the invoice date.
const PaymentTermDays = 60

// Comment count bounds per invoice.
const (
	MinComments = 1
	MaxComments = 10
)

// DocumentBuilder produces one invoice for a date.
type DocumentBuilder interface {
	// Build returns an invoice dated date with a line count drawn from
	// [minLines, maxLines], together with that line count.
	Build(date time.Time, minLines, maxLines int) (*models.Invoice, int, error)
}

// Bounds are the per-file document and per-document line count ranges.
type Bounds struct {
	MinDocs  int
	MaxDocs  int
	MinLines int
	MaxLines int
}

// Content is the payload of one output file.
type Content struct {
	// Body holds the documents, one JSON object per line, without a trailing newline.
	Body []byte

	// Documents is the number of documents in Body.
	Documents int

	// Lines is the total number of invoice lines across all documents.
	Lines int

	// Bytes is len(Body).
	Bytes int
}

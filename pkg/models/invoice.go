package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are written as JSON numbers, the way downstream loaders expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Address types used in Customer.Addresses.
const (
	AddressBilling  = "BILL"
	AddressShipping = "SHIP"
)

// Invoice is one generated invoice document. Field order is the JSON key order.
type Invoice struct {
	Detail   Detail    `json:"detail"`
	Customer Customer  `json:"customer"`
	Lines    []Line    `json:"lines"`
	TaxLines []TaxLine `json:"tax_lines"`
	Total    Total     `json:"total"`
	Comments []Comment `json:"comments"`
}

// Detail holds the identifying data of an invoice.
type Detail struct {
	DocumentID       string    `json:"document_id"`
	InvoiceNumber    string    `json:"invoice_number"`
	PurchaseOrder    string    `json:"purchase_order"`
	ContractNumber   string    `json:"contract_number"`
	CurrencyCode     string    `json:"currency_code"`
	InvoiceDate      Date      `json:"invoice_date"`
	DueDate          Date      `json:"due_date"`
	CreatedTimestamp Timestamp `json:"created_timestamp"`
}

// Customer is the invoiced party.
type Customer struct {
	CustomerNumber string    `json:"customer_number"`
	Name           string    `json:"name"`
	Addresses      []Address `json:"addresses"`
}

// Address is a billing or shipping address.
type Address struct {
	AddressType   string `json:"address_type"`
	ContactName   string `json:"contact_name"`
	AddressDetail string `json:"address_detail"`
	ZipCode       string `json:"zip_code"`
	CityName      string `json:"city_name"`
	CountryName   string `json:"country_name"`
}

// Line is a single invoice line item.
//
// DiscountAmount is the base amount after discount, and NetAmount is
// DiscountAmount + TaxAmount.
type Line struct {
	LineNumber     int             `json:"line_number"`
	ProductCode    string          `json:"product_code"`
	ProductDesc    string          `json:"product_desc"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountPct    int             `json:"discount_pct"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxCode        string          `json:"tax_code"`
	TaxPct         int             `json:"tax_pct"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Comment        string          `json:"comment"`
}

// TaxLine aggregates the tax amount of all lines sharing a tax code.
type TaxLine struct {
	TaxCode   string          `json:"tax_code"`
	TaxPct    int             `json:"tax_pct"`
	TaxDesc   string          `json:"tax_desc"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

// Total sums the line amounts.
type Total struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// Comment is a free-text invoice comment.
type Comment struct {
	CommentNumber int    `json:"comment_number"`
	CommentText   string `json:"comment_text"`
}

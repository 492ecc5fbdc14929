package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invoicegen/internal/random"
	"invoicegen/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Builder generates invoices from a random source.
type Builder struct {
	src *random.Source
}

// NewBuilder returns a Builder drawing from src.
func NewBuilder(src *random.Source) *Builder {
	return &Builder{src: src}
}

// Build generates one invoice dated date.
func (b *Builder) Build(date time.Time, minLines, maxLines int) (*models.Invoice, int, error) {
	const op = "Build"

	lineCount, err := b.src.Integer(minLines, maxLines)
	if err != nil {
		return nil, 0, WrapGenerationError(op, err, "line count")
	}

	lines := make([]models.Line, 0, lineCount)
	taxes := newTaxAggregator()
	var total models.Total

	for n := 1; n <= lineCount; n++ {
		line, tax, err := b.line(n)
		if err != nil {
			return nil, 0, WrapGenerationError(op, err, fmt.Sprintf("line %d", n))
		}
		lines = append(lines, line)

		total.BaseAmount = total.BaseAmount.Add(line.BaseAmount)
		total.DiscountAmount = total.DiscountAmount.Add(line.DiscountAmount)
		total.TaxAmount = total.TaxAmount.Add(line.TaxAmount)
		total.NetAmount = total.NetAmount.Add(line.NetAmount)

		taxes.add(tax, line.TaxAmount)
	}

	total.BaseAmount = total.BaseAmount.RoundBank(2)
	total.DiscountAmount = total.DiscountAmount.RoundBank(2)
	total.TaxAmount = total.TaxAmount.RoundBank(2)
	total.NetAmount = total.NetAmount.RoundBank(2)

	comments, err := b.comments()
	if err != nil {
		return nil, 0, WrapGenerationError(op, err, "comments")
	}

	detail, err := b.detail(date)
	if err != nil {
		return nil, 0, WrapGenerationError(op, err, "detail")
	}

	customer, err := b.customer()
	if err != nil {
		return nil, 0, WrapGenerationError(op, err, "customer")
	}

	return &models.Invoice{
		Detail:   detail,
		Customer: customer,
		Lines:    lines,
		TaxLines: taxes.lines(),
		Total:    total,
		Comments: comments,
	}, lineCount, nil
}

func (b *Builder) line(number int) (models.Line, random.Tax, error) {
	product, err := b.src.Product()
	if err != nil {
		return models.Line{}, random.Tax{}, err
	}
	tax := b.src.Tax()

	quantity, err := b.src.Integer(1, 1000)
	if err != nil {
		return models.Line{}, random.Tax{}, err
	}
	unitPrice, err := b.src.Decimal(0.5, 100, 2)
	if err != nil {
		return models.Line{}, random.Tax{}, err
	}
	discountPct := b.src.DiscountPct()

	baseAmount := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).RoundBank(2)
	discountAmount := baseAmount.Mul(decimal.NewFromInt(int64(100 - discountPct))).Div(hundred).RoundBank(2)
	taxAmount := discountAmount.Mul(decimal.NewFromInt(int64(tax.Pct))).Div(hundred).RoundBank(2)

	comment, err := b.sentence(random.LowerText, 20, 200)
	if err != nil {
		return models.Line{}, random.Tax{}, err
	}

	return models.Line{
		LineNumber:     number,
		ProductCode:    product.Code,
		ProductDesc:    product.Description,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		BaseAmount:     baseAmount,
		DiscountPct:    discountPct,
		DiscountAmount: discountAmount,
		TaxCode:        tax.Code,
		TaxPct:         tax.Pct,
		TaxAmount:      taxAmount,
		NetAmount:      discountAmount.Add(taxAmount),
		Comment:        comment,
	}, tax, nil
}

func (b *Builder) comments() ([]models.Comment, error) {
	count, err := b.src.Integer(MinComments, MaxComments)
	if err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, count)
	for n := 1; n <= count; n++ {
		text, err := b.sentence(random.LowerText, 20, 200)
		if err != nil {
			return nil, err
		}
		comments = append(comments, models.Comment{CommentNumber: n, CommentText: text})
	}
	return comments, nil
}

func (b *Builder) detail(date time.Time) (models.Detail, error) {
	id, err := b.src.UUID()
	if err != nil {
		return models.Detail{}, err
	}

	var codes [3]string
	for i := range codes {
		if codes[i], err = b.src.String(random.UpperAlnum, 20, 20); err != nil {
			return models.Detail{}, err
		}
	}

	invoiceDate := models.NewDate(date)
	return models.Detail{
		DocumentID:       id.String(),
		InvoiceNumber:    codes[0],
		PurchaseOrder:    codes[1],
		ContractNumber:   codes[2],
		CurrencyCode:     b.src.CurrencyCode(),
		InvoiceDate:      invoiceDate,
		DueDate:          invoiceDate.AddDays(PaymentTermDays),
		CreatedTimestamp: models.Timestamp{Time: b.src.Timestamp(invoiceDate.Time)},
	}, nil
}

func (b *Builder) customer() (models.Customer, error) {
	number, err := b.src.String(random.UpperAlnum, 20, 20)
	if err != nil {
		return models.Customer{}, err
	}
	name, err := b.sentence(random.LowerText, 20, 200)
	if err != nil {
		return models.Customer{}, err
	}

	addresses := make([]models.Address, 0, 2)
	for _, kind := range []string{models.AddressBilling, models.AddressShipping} {
		addr, err := b.address(kind)
		if err != nil {
			return models.Customer{}, err
		}
		addresses = append(addresses, addr)
	}

	return models.Customer{
		CustomerNumber: number,
		Name:           name,
		Addresses:      addresses,
	}, nil
}

func (b *Builder) address(kind string) (models.Address, error) {
	contact, err := b.sentence(random.LowerText, 20, 120)
	if err != nil {
		return models.Address{}, err
	}
	detail, err := b.sentence(random.LowerAlnumText, 20, 200)
	if err != nil {
		return models.Address{}, err
	}
	zip, err := b.src.Integer(10000, 99999)
	if err != nil {
		return models.Address{}, err
	}
	city, err := b.sentence(random.LowerText, 20, 100)
	if err != nil {
		return models.Address{}, err
	}

	return models.Address{
		AddressType:   kind,
		ContactName:   contact,
		AddressDetail: detail,
		ZipCode:       strconv.Itoa(zip),
		CityName:      city,
		CountryName:   b.src.Country(),
	}, nil
}

// sentence returns trimmed random text with its first letter upper-cased.
func (b *Builder) sentence(alphabet string, minLen, maxLen int) (string, error) {
	s, err := b.src.String(alphabet, minLen, maxLen)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return s, nil
	}
	return strings.ToUpper(s[:1]) + s[1:], nil
}

// taxAggregator sums tax amounts per tax code, keeping first-seen order.
type taxAggregator struct {
	index map[string]int
	items []models.TaxLine
}

func newTaxAggregator() *taxAggregator {
	return &taxAggregator{index: make(map[string]int)}
}

func (a *taxAggregator) add(tax random.Tax, amount decimal.Decimal) {
	if i, ok := a.index[tax.Code]; ok {
		a.items[i].TaxAmount = a.items[i].TaxAmount.Add(amount)
		return
	}
	a.index[tax.Code] = len(a.items)
	a.items = append(a.items, models.TaxLine{
		TaxCode:   tax.Code,
		TaxPct:    tax.Pct,
		TaxDesc:   tax.Description,
		TaxAmount: amount,
	})
}

func (a *taxAggregator) lines() []models.TaxLine {
	if a.items == nil {
		return []models.TaxLine{}
	}
	return a.items
}

package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"invoicegen/internal/random"
)

// Assembler produces the content of one output file.
type Assembler struct {
	src     *random.Source
	builder DocumentBuilder
	bounds  Bounds
}

// NewAssembler returns an Assembler drawing document counts from src and
// documents from builder.
func NewAssembler(src *random.Source, builder DocumentBuilder, bounds Bounds) *Assembler {
	return &Assembler{src: src, builder: builder, bounds: bounds}
}

// Assemble builds a random number of invoices dated date and joins their
// JSON encodings with newlines.
func (a *Assembler) Assemble(date time.Time) (*Content, error) {
	const op = "Assemble"

	count, err := a.src.Integer(a.bounds.MinDocs, a.bounds.MaxDocs)
	if err != nil {
		return nil, WrapGenerationError(op, err, "document count")
	}

	var buf bytes.Buffer
	content := &Content{}
	for i := 0; i < count; i++ {
		doc, lines, err := a.builder.Build(date, a.bounds.MinLines, a.bounds.MaxLines)
		if err != nil {
			return nil, WrapGenerationError(op, err, fmt.Sprintf("document %d", i+1))
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return nil, WrapGenerationError(op, err, "failed to encode document")
		}

		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)

		content.Documents++
		content.Lines += lines
	}

	content.Body = buf.Bytes()
	content.Bytes = len(content.Body)
	return content, nil
}

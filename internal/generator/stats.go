package generator

import (
	"time"

	"github.com/shopspring/decimal"

	"invoicegen/internal/invoice"
)

const (
	summaryTimeLayout = "2006/01/02 15:04:05,000000"
	summaryDateLayout = "2006/01/02"
)

// Stats accumulates counters over a run.
type Stats struct {
	Days      int
	Files     int
	Documents int
	Lines     int

	// Bytes is the uncompressed content size; UploadedBytes is what was sent.
	Bytes         int64
	UploadedBytes int64

	Start time.Time
	End   time.Time
}

func (s *Stats) addFile(content *invoice.Content, uploaded int64) {
	s.Files++
	s.Documents += content.Documents
	s.Lines += content.Lines
	s.Bytes += int64(content.Bytes)
	s.UploadedBytes += uploaded
}

// AverageFileSize is Bytes/Files rounded to 2 decimals, 0 without files.
func (s Stats) AverageFileSize() float64 {
	if s.Files == 0 {
		return 0
	}
	return decimal.NewFromInt(s.Bytes).
		Div(decimal.NewFromInt(int64(s.Files))).
		RoundBank(2).
		InexactFloat64()
}

// Summary is the final report of a run, printed as one JSON object.
type Summary struct {
	Scenario             string  `json:"scenario"`
	Bucket               string  `json:"bucket"`
	Pattern              string  `json:"pattern"`
	StartDatetime        string  `json:"start_datetime"`
	EndDatetime          string  `json:"end_datetime"`
	ElapsedSec           float64 `json:"elapsed_sec"`
	FromDate             string  `json:"from_date"`
	ToDate               string  `json:"to_date"`
	DayCount             int     `json:"day_count"`
	FileCount            int     `json:"file_count"`
	DocumentCount        int     `json:"document_count"`
	LineCount            int     `json:"line_count"`
	SizeBytes            int64   `json:"size_bytes"`
	UploadedBytes        int64   `json:"uploaded_bytes"`
	AvgDocumentSizeBytes float64 `json:"avg_document_size_bytes"`
}

// NewSummary builds the run report.
func NewSummary(p Params, s Stats) *Summary {
	return &Summary{
		Scenario:             p.Scenario,
		Bucket:               p.Bucket,
		Pattern:              p.Pattern,
		StartDatetime:        s.Start.Format(summaryTimeLayout),
		EndDatetime:          s.End.Format(summaryTimeLayout),
		ElapsedSec:           s.End.Sub(s.Start).Seconds(),
		FromDate:             p.FromDate.Format(summaryDateLayout),
		ToDate:               p.ToDate.Format(summaryDateLayout),
		DayCount:             s.Days,
		FileCount:            s.Files,
		DocumentCount:        s.Documents,
		LineCount:            s.Lines,
		SizeBytes:            s.Bytes,
		UploadedBytes:        s.UploadedBytes,
		AvgDocumentSizeBytes: s.AverageFileSize(),
	}
}

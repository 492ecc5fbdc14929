package generator

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ScenarioJSON is the only supported scenario: newline-delimited invoice JSON.
const ScenarioJSON = "json"

// Sinks and compression codecs accepted in Params.
const (
	SinkGCS   = "gcs"
	SinkLocal = "local"

	CompressionNone = "none"
	CompressionLZ4  = "lz4"
)

// LogLevels are the accepted --loglevel values.
var LogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// Params is the resolved configuration of a run. It is not modified once
// a Runner has been created from it.
type Params struct {
	Scenario string
	FromDate time.Time
	ToDate   time.Time

	MinFiles int
	MaxFiles int
	MinDocs  int
	MaxDocs  int
	MinLines int
	MaxLines int

	// SleepSeconds is the pause after each uploaded file.
	SleepSeconds int

	Namespace string
	Bucket    string
	Pattern   string
	LogLevel  string

	// Seed for the random source; 0 picks a time based seed.
	Seed uint64

	Compression string
	Sink        string
	OutputDir   string
}

// DefaultParams returns the defaults for optional parameters.
func DefaultParams() Params {
	return Params{
		MinFiles:    1,
		MaxFiles:    1,
		MinDocs:     1,
		MaxDocs:     1,
		MinLines:    100,
		MaxLines:    2000,
		LogLevel:    "INFO",
		Compression: CompressionNone,
		Sink:        SinkGCS,
		OutputDir:   "./out",
	}
}

// Validate checks every parameter and returns the first problem found as
// a *ParamError.
func (p Params) Validate() error {
	switch {
	case p.Scenario == "":
		return missing("scenario")
	case p.Scenario != ScenarioJSON:
		return invalid("scenario", p.Scenario, `must have value "json"`)
	case p.FromDate.IsZero():
		return missing("fromdate")
	case p.ToDate.IsZero():
		return missing("todate")
	case p.FromDate.After(p.ToDate):
		return invalid("todate", p.ToDate.Format(time.DateOnly), "must not be before fromdate "+p.FromDate.Format(time.DateOnly))
	}

	bounds := []struct {
		name     string
		min, max int
	}{
		{"files", p.MinFiles, p.MaxFiles},
		{"docs", p.MinDocs, p.MaxDocs},
		{"lines", p.MinLines, p.MaxLines},
	}
	for _, b := range bounds {
		if b.min < 0 {
			return invalid("min"+b.name, b.min, "must not be negative")
		}
		if b.min > b.max {
			return invalid("max"+b.name, b.max, fmt.Sprintf("must not be less than min%s (%d)", b.name, b.min))
		}
	}

	switch {
	case p.SleepSeconds < 0:
		return invalid("sleep", p.SleepSeconds, "must not be negative")
	case p.Namespace == "":
		return missing("namespace")
	case p.Bucket == "":
		return missing("bucket")
	case p.Pattern == "":
		return missing("pattern")
	}

	if !slices.Contains(LogLevels, p.LogLevel) {
		return invalid("loglevel", p.LogLevel, "must be one of "+strings.Join(LogLevels, ", "))
	}

	switch p.Compression {
	case "", CompressionNone, CompressionLZ4:
	default:
		return invalid("compression", p.Compression, `must be "none" or "lz4"`)
	}

	switch p.Sink {
	case SinkGCS:
	case SinkLocal:
		if p.OutputDir == "" {
			return missing("output-dir")
		}
	default:
		return invalid("sink", p.Sink, `must be "gcs" or "local"`)
	}

	return nil
}

// Days returns the number of calendar days in the range.
func (p Params) Days() int {
	if p.FromDate.After(p.ToDate) {
		return 0
	}
	return int(p.ToDate.Sub(p.FromDate).Hours()/24) + 1
}

// ParseDate accepts YYYYMMDD or YYYY-MM-DD and returns midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := "20060102"
	if strings.Contains(s, "-") {
		layout = time.DateOnly
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYYMMDD or YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"invoicegen/internal/generator"
)

// fakeSheets records the Sheets API calls it receives.
type fakeSheets struct {
	mu        sync.Mutex
	sheets    []string
	headers   bool
	calls     []string
	appended  [][]interface{}
	formatted bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	f.calls = append(f.calls, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/abc-123"):
		var sheets []map[string]any
		for i, title := range f.sheets {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title, "sheetId": i + 1}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "abc-123", "sheets": sheets})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "addSheet") {
			f.sheets = append(f.sheets, DefaultSheetName)
			_, _ = io.WriteString(w, `{"replies":[{"addSheet":{"properties":{"sheetId":7,"title":"runs"}}}]}`)
			return
		}
		f.formatted = true
		_, _ = io.WriteString(w, `{"replies":[]}`)

	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		if f.headers {
			_, _ = io.WriteString(w, `{"values":[["Scenario"]]}`)
			return
		}
		_, _ = io.WriteString(w, `{}`)

	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		f.headers = true
		_, _ = io.WriteString(w, `{}`)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var vr struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&vr)
		f.appended = append(f.appended, vr.Values...)
		_, _ = io.WriteString(w, `{}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"not found"}}`)
	}
}

func newTestService(t *testing.T, fake *fakeSheets) *Service {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewSheetsService(context.Background(),
		"https://docs.google.com/spreadsheets/d/abc-123/edit#gid=0",
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func testSummary() *generator.Summary {
	return &generator.Summary{
		Scenario:             "json",
		Bucket:               "invoices",
		Pattern:              "${date}_${number}.json",
		FromDate:             "2024/01/01",
		ToDate:               "2024/01/01",
		DayCount:             1,
		FileCount:            2,
		DocumentCount:        4,
		LineCount:            400,
		SizeBytes:            1000,
		UploadedBytes:        1000,
		AvgDocumentSizeBytes: 500,
	}
}

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC_d-9/edit")
	require.NoError(t, err)
	assert.Equal(t, "1AbC_d-9", id)

	_, err = extractSpreadsheetID("https://example.com/not-a-sheet")
	assert.Error(t, err)
}

func TestAppendSummaryCreatesSheetAndHeaders(t *testing.T) {
	fake := &fakeSheets{}
	s := newTestService(t, fake)

	require.NoError(t, s.AppendSummary(context.Background(), "", testSummary()))

	assert.Equal(t, []string{DefaultSheetName}, fake.sheets)
	assert.True(t, fake.headers)
	assert.True(t, fake.formatted)
	require.Len(t, fake.appended, 1)

	row := fake.appended[0]
	require.Len(t, row, len(headers))
	assert.Equal(t, "json", row[0])
	assert.Equal(t, "invoices", row[1])
	assert.EqualValues(t, 2, row[9])
	assert.Equal(t, "2024-01-02T03:04:05Z", row[15])
}

func TestAppendSummaryReusesExistingSheet(t *testing.T) {
	fake := &fakeSheets{sheets: []string{"runs"}, headers: true}
	s := newTestService(t, fake)

	require.NoError(t, s.AppendSummary(context.Background(), "runs", testSummary()))
	require.NoError(t, s.AppendSummary(context.Background(), "runs", testSummary()))

	assert.Len(t, fake.appended, 2)
	assert.False(t, fake.formatted)
	for _, call := range fake.calls {
		assert.NotContains(t, call, http.MethodPut)
	}
}

func TestAppendSummaryServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"denied"}}`)
	}))
	t.Cleanup(srv.Close)

	s, err := NewSheetsService(context.Background(),
		"https://docs.google.com/spreadsheets/d/abc-123/edit",
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	err = s.AppendSummary(context.Background(), "runs", testSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get spreadsheet")
}

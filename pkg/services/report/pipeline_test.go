package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/marketlens"
	"github.com/de-tools/report-atlas/pkg/services/render/markdown"
	"github.com/de-tools/report-atlas/pkg/services/render/pdf"
)

// Walks the full block chain against a fake upstream: summary generation with
// a resolved question group, markdown rendering and the final themed PDF with
// a table of contents.
func TestSummaryToPdfPipeline(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/fundamental/predefined_report_questions":
			_, _ = w.Write([]byte(`{"data":{"questions":[
				{"id":"q1","text":"Summarize the quarter.","category":"Overview","group":"brief"},
				{"id":"q2","text":"How did margins develop?","category":"Financials","group":"detailed"},
				{"id":"q3","text":"What are the key risks?","category":"Risks","group":"brief"}
			]}}`))
		case "/api/fundamental/report_summary":
			var req api.SummaryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "AAPL", req.CompanySymbol)
			assert.Equal(t, "2023Q4", req.ReportPeriod)
			assert.Equal(t, []string{"Summarize the quarter.", "What are the key risks?"}, req.Questions)
			_, _ = w.Write([]byte(`{"data":{"ticker":"AAPL","year":2023,"quarter":4,"reports":[
				{"question":"Summarize the quarter.","answer":"Record services revenue.\\niPhone stabilized.","category":"Overview"},
				{"question":"What are the key risks?","answer":"Regulatory pressure in the EU.","category":"Risks"}
			]}}`))
		default:
			t.Fatalf("unexpected upstream path %s", r.URL.Path)
		}
	}))
	defer upstream.Close()

	client, err := marketlens.NewClient(marketlens.Config{
		BaseURL: upstream.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	result := NewService(client).GenerateReportSummary(ctx, SummaryRequest{
		Ticker: "AAPL",
		Period: "2023Q4",
		Group:  domain.QuestionGroupBrief,
	})
	require.Equal(t, domain.StatusSuccess, result.Status())
	summary, ok := result.Payload()
	require.True(t, ok)
	require.Len(t, summary.Answers, 2)
	for _, answer := range summary.Answers {
		assert.NotEmpty(t, answer.Text)
	}

	doc, err := markdown.Render(summary, domain.RenderOptions{CompanyName: "Apple Inc.", OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc. Financial Analysis Report (2023Q4)", doc.Title)
	assert.Contains(t, doc.Content, "## 1. Overview")
	assert.Contains(t, doc.Content, "## 2. Risks")
	assert.Contains(t, doc.Content, "Record services revenue.\niPhone stabilized.")

	art, err := pdf.Render(pdf.Source{Path: doc.Path}, domain.PdfOptions{
		Title:      doc.Title,
		Theme:      domain.ThemeProfessional,
		IncludeTOC: true,
		OutputPath: filepath.Join(dir, "AAPL_2023Q4.pdf"),
	})
	require.NoError(t, err)
	assert.Greater(t, art.SizeBytes, int64(0))

	data, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

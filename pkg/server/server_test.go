package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/report"
)

type mockCaller struct {
	mock.Mock
}

func (m *mockCaller) CachedReport(ctx context.Context, query domain.ReportQuery) (api.CachedReportResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(api.CachedReportResponse), args.Error(1)
}

func (m *mockCaller) CachedPeriods(ctx context.Context, ticker string) (api.PeriodsResponse, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(api.PeriodsResponse), args.Error(1)
}

func (m *mockCaller) PredefinedQuestions(ctx context.Context) (api.QuestionsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(api.QuestionsResponse), args.Error(1)
}

func (m *mockCaller) ReportSummary(ctx context.Context, req api.SummaryRequest) (api.SummaryResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.SummaryResponse), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	caller := new(mockCaller)
	periodsResp := api.PeriodsResponse{}
	periodsResp.Data.Ticker = "AAPL"
	periodsResp.Data.Periods = []api.PeriodItem{{Year: 2023, Quarter: 4}}
	caller.On("CachedPeriods", mock.Anything, "AAPL").Return(periodsResp, nil)
	caller.On("CachedReport", mock.Anything, domain.ReportQuery{Ticker: "AAPL"}).
		Return(api.CachedReportResponse{Data: api.ReportPayload{Ticker: "AAPL", Year: 2023, Quarter: 4}}, nil)

	webAPI := NewWebAPI(logger, Config{
		Addr: ":0",
		Dependencies: Dependencies{
			ServiceFactory: func(apiKey string) (*report.Service, error) {
				assert.Equal(t, "test-key", apiKey)
				return report.NewService(caller), nil
			},
			OutputDir: t.TempDir(),
		},
	})

	srv := httptest.NewServer(webAPI.router)
	defer srv.Close()

	t.Run("cached periods", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/blocks/cached-periods?ticker=AAPL", nil)
		req.Header.Set("Authorization", "Bearer test-key")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body api.PeriodsBlockResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, []api.PeriodItem{{Year: 2023, Quarter: 4}}, body.PeriodsList)
	})

	t.Run("cached report", func(t *testing.T) {
		payload, _ := json.Marshal(api.CachedReportBlockRequest{Ticker: "AAPL"})
		req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/blocks/cached-report", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer test-key")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing credential yields error envelope", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/blocks/cached-periods?ticker=AAPL")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"status":"error"`)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/blocks/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

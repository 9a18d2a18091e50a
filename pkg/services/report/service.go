// Package report implements the four report blocks. Each block validates
// its inputs before any network call, delegates to the Market Lens adapter,
// and folds the outcome into the uniform result envelope.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/report-atlas/pkg/adapters"
	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// Caller is the slice of the Market Lens adapter the blocks use.
type Caller interface {
	CachedReport(ctx context.Context, query domain.ReportQuery) (api.CachedReportResponse, error)
	CachedPeriods(ctx context.Context, ticker string) (api.PeriodsResponse, error)
	PredefinedQuestions(ctx context.Context) (api.QuestionsResponse, error)
	ReportSummary(ctx context.Context, req api.SummaryRequest) (api.SummaryResponse, error)
}

// SummaryRequest are the inputs of the Generate Report Summary block.
// Questions are free-form question texts; Group selects a predefined set
// instead when Questions is empty.
type SummaryRequest struct {
	Ticker    string
	Period    string
	Questions []string
	Group     domain.QuestionGroup
}

type Service struct {
	client Caller
}

func NewService(client Caller) *Service {
	return &Service{client: client}
}

// GetCachedReport retrieves the cached analysis for a ticker and period.
func (s *Service) GetCachedReport(ctx context.Context, query domain.ReportQuery) domain.Result[domain.ReportData] {
	logger := zerolog.Ctx(ctx)

	if err := query.Validate(); err != nil {
		return domain.Failure[domain.ReportData](err)
	}

	resp, err := s.client.CachedReport(ctx, query)
	if err != nil {
		logger.Error().Err(err).Str("ticker", query.Ticker).Msg("cached report lookup failed")
		return domain.Failure[domain.ReportData](err)
	}

	report := adapters.MapReportPayloadApiToDomain(resp.Data)
	return domain.Success(report,
		fmt.Sprintf("retrieved cached report for %s (%s)", report.Ticker, report.Period.Label()))
}

// GetCachedPeriods lists the periods the API holds cached reports for.
func (s *Service) GetCachedPeriods(ctx context.Context, ticker string) domain.Result[[]domain.Period] {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(ticker) == "" {
		return domain.Failure[[]domain.Period](domain.Validationf("ticker must not be empty"))
	}

	resp, err := s.client.CachedPeriods(ctx, ticker)
	if err != nil {
		logger.Error().Err(err).Str("ticker", ticker).Msg("cached periods lookup failed")
		return domain.Failure[[]domain.Period](err)
	}

	periods := adapters.MapPeriodsApiToDomain(resp.Data.Periods)
	return domain.Success(periods,
		fmt.Sprintf("found %d cached periods for %s", len(periods), ticker))
}

// GetPredefinedQuestions lists the predefined analysis questions,
// optionally filtered to one group.
func (s *Service) GetPredefinedQuestions(ctx context.Context, group domain.QuestionGroup) domain.Result[[]domain.Question] {
	logger := zerolog.Ctx(ctx)

	if group != "" && !group.Valid() {
		return domain.Failure[[]domain.Question](
			domain.Validationf("unknown question group %q, expected brief or detailed", group))
	}

	resp, err := s.client.PredefinedQuestions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("predefined questions lookup failed")
		return domain.Failure[[]domain.Question](err)
	}

	questions := adapters.MapQuestionsApiToDomain(resp.Data.Questions)
	if group != "" {
		filtered := questions[:0]
		for _, q := range questions {
			if q.Group == group {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	return domain.Success(questions, fmt.Sprintf("found %d predefined questions", len(questions)))
}

// GenerateReportSummary asks the API for a customized summary. When the
// request names a question group rather than explicit questions, the
// group's predefined questions are resolved first.
func (s *Service) GenerateReportSummary(ctx context.Context, req SummaryRequest) domain.Result[domain.ReportData] {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(req.Ticker) == "" {
		return domain.Failure[domain.ReportData](domain.Validationf("ticker must not be empty"))
	}
	if req.Group != "" && !req.Group.Valid() {
		return domain.Failure[domain.ReportData](
			domain.Validationf("unknown question group %q, expected brief or detailed", req.Group))
	}
	if req.Period != "" {
		if _, err := domain.ParsePeriod(req.Period); err != nil {
			return domain.Failure[domain.ReportData](err)
		}
	}

	questions := req.Questions
	if len(questions) == 0 && req.Group != "" {
		resolved := s.GetPredefinedQuestions(ctx, req.Group)
		predefined, ok := resolved.Payload()
		if !ok {
			return domain.Failure[domain.ReportData](resolved.Err())
		}
		for _, q := range predefined {
			questions = append(questions, q.Text)
		}
	}

	resp, err := s.client.ReportSummary(ctx, api.SummaryRequest{
		CompanySymbol: req.Ticker,
		ReportPeriod:  req.Period,
		Questions:     questions,
	})
	if err != nil {
		logger.Error().Err(err).Str("ticker", req.Ticker).Msg("report summary generation failed")
		return domain.Failure[domain.ReportData](err)
	}

	report := adapters.MapReportPayloadApiToDomain(resp.Data)
	return domain.Success(report,
		fmt.Sprintf("generated report summary for %s with %d answers", req.Ticker, len(report.Answers)))
}

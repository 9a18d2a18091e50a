package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
)

func TestMapReportPayloadApiToDomain(t *testing.T) {
	payload := api.ReportPayload{
		Ticker:  "AAPL",
		Year:    2023,
		Quarter: 4,
		Reports: []api.ReportItem{
			{QuestionID: "q1", Question: "How did revenue develop?", Answer: "Revenue grew 5%.", Category: "Financials", Group: "brief"},
			{Question: "What are the key risks?", Answer: "Regulatory pressure."},
		},
	}

	report := MapReportPayloadApiToDomain(payload)

	assert.Equal(t, "AAPL", report.Ticker)
	assert.Equal(t, domain.Period{Year: 2023, Quarter: 4}, report.Period)
	require.Len(t, report.Answers, 2)
	assert.Equal(t, "q1", report.Answers[0].Question.ID)
	assert.Equal(t, domain.QuestionGroupBrief, report.Answers[0].Question.Group)
	assert.Equal(t, "Revenue grew 5%.", report.Answers[0].Text)
	assert.Equal(t, domain.QuestionGroup(""), report.Answers[1].Question.Group)
}

func TestMapReportData_RoundTrip(t *testing.T) {
	report := domain.ReportData{
		Ticker: "MSFT",
		Period: domain.Period{Year: 2024, Quarter: 1},
		Answers: []domain.Answer{
			{
				Question: domain.Question{ID: "q2", Text: "How did margins develop?", Category: "Financials", Group: domain.QuestionGroupDetailed},
				Text:     "Gross margin expanded.",
			},
		},
	}

	assert.Equal(t, report, MapReportPayloadApiToDomain(MapReportDataDomainToApi(report)))
}

func TestMapPeriods_PreservesOrder(t *testing.T) {
	items := []api.PeriodItem{{Year: 2024, Quarter: 1}, {Year: 2023}, {Year: 2023, Quarter: 4}}

	periods := MapPeriodsApiToDomain(items)

	assert.Equal(t, []domain.Period{{Year: 2024, Quarter: 1}, {Year: 2023}, {Year: 2023, Quarter: 4}}, periods)
	assert.Equal(t, items, MapPeriodsDomainToApi(periods))
}

func TestMapQuestions(t *testing.T) {
	items := []api.QuestionItem{
		{ID: "q1", Text: "Summarize the quarter.", Category: "Overview", Group: "brief"},
	}

	questions := MapQuestionsApiToDomain(items)

	require.Len(t, questions, 1)
	assert.Equal(t, domain.Question{
		ID:       "q1",
		Text:     "Summarize the quarter.",
		Category: "Overview",
		Group:    domain.QuestionGroupBrief,
	}, questions[0])
	assert.Equal(t, items, MapQuestionsDomainToApi(questions))
}

package adapters

import (
	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
)

func MapReportPayloadApiToDomain(payload api.ReportPayload) domain.ReportData {
	report := domain.ReportData{
		Ticker: payload.Ticker,
		Period: domain.Period{Year: payload.Year, Quarter: payload.Quarter},
	}
	for _, item := range payload.Reports {
		report.Answers = append(report.Answers, domain.Answer{
			Question: domain.Question{
				ID:       item.QuestionID,
				Text:     item.Question,
				Category: item.Category,
				Group:    domain.QuestionGroup(item.Group),
			},
			Text: item.Answer,
		})
	}
	return report
}

func MapReportDataDomainToApi(report domain.ReportData) api.ReportPayload {
	payload := api.ReportPayload{
		Ticker:  report.Ticker,
		Year:    report.Period.Year,
		Quarter: report.Period.Quarter,
	}
	for _, answer := range report.Answers {
		payload.Reports = append(payload.Reports, api.ReportItem{
			QuestionID: answer.Question.ID,
			Question:   answer.Question.Text,
			Answer:     answer.Text,
			Category:   answer.Question.Category,
			Group:      string(answer.Question.Group),
		})
	}
	return payload
}

func MapPeriodApiToDomain(item api.PeriodItem) domain.Period {
	return domain.Period{Year: item.Year, Quarter: item.Quarter}
}

func MapPeriodsApiToDomain(items []api.PeriodItem) []domain.Period {
	periods := make([]domain.Period, 0, len(items))
	for _, item := range items {
		periods = append(periods, MapPeriodApiToDomain(item))
	}
	return periods
}

func MapPeriodDomainToApi(period domain.Period) api.PeriodItem {
	return api.PeriodItem{Year: period.Year, Quarter: period.Quarter}
}

func MapPeriodsDomainToApi(periods []domain.Period) []api.PeriodItem {
	items := make([]api.PeriodItem, 0, len(periods))
	for _, period := range periods {
		items = append(items, MapPeriodDomainToApi(period))
	}
	return items
}

func MapQuestionApiToDomain(item api.QuestionItem) domain.Question {
	return domain.Question{
		ID:       item.ID,
		Text:     item.Text,
		Category: item.Category,
		Group:    domain.QuestionGroup(item.Group),
	}
}

func MapQuestionsApiToDomain(items []api.QuestionItem) []domain.Question {
	questions := make([]domain.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, MapQuestionApiToDomain(item))
	}
	return questions
}

func MapQuestionDomainToApi(q domain.Question) api.QuestionItem {
	return api.QuestionItem{
		ID:       q.ID,
		Text:     q.Text,
		Category: q.Category,
		Group:    string(q.Group),
	}
}

func MapQuestionsDomainToApi(questions []domain.Question) []api.QuestionItem {
	items := make([]api.QuestionItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, MapQuestionDomainToApi(q))
	}
	return items
}

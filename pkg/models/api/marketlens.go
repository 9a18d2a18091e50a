package api

// Wire shapes of the Market Lens fundamental-analysis endpoints. The API is
// an external collaborator; these types only pin down the response fields
// this repository reads.

// ReportItem is one answered question inside a cached report or summary.
type ReportItem struct {
	QuestionID string `json:"question_id,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
	Group      string `json:"group,omitempty"`
}

// ReportPayload is the report body shared by the cached-report and
// report-summary endpoints.
type ReportPayload struct {
	Ticker  string       `json:"ticker"`
	Year    int          `json:"year"`
	Quarter int          `json:"quarter"`
	Reports []ReportItem `json:"reports"`
}

// CachedReportResponse is returned by GET /api/fundamental/cached_report.
type CachedReportResponse struct {
	Data ReportPayload `json:"data"`
}

// PeriodItem is one available reporting period.
type PeriodItem struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// PeriodsResponse is returned by GET /api/fundamental/cached_report_periods.
type PeriodsResponse struct {
	Data struct {
		Ticker  string       `json:"ticker"`
		Periods []PeriodItem `json:"periods"`
	} `json:"data"`
}

// QuestionItem is one predefined analysis question.
type QuestionItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Group    string `json:"group"`
}

// QuestionsResponse is returned by
// GET /api/fundamental/predefined_report_questions.
type QuestionsResponse struct {
	Data struct {
		Questions []QuestionItem `json:"questions"`
	} `json:"data"`
}

// SummaryRequest is the body of POST /api/fundamental/report_summary.
type SummaryRequest struct {
	CompanySymbol string   `json:"company_symbol"`
	ReportPeriod  string   `json:"report_period,omitempty"`
	Questions     []string `json:"questions,omitempty"`
}

// SummaryResponse is returned by POST /api/fundamental/report_summary.
type SummaryResponse struct {
	Data ReportPayload `json:"data"`
}

// ErrorResponse is the API's error body; Detail is best-effort.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

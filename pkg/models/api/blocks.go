package api

// Request and response bodies of the block endpoints served to the
// workflow host. Every response carries the uniform status/message pair;
// the payload field is set only on success.

type CachedReportBlockRequest struct {
	Ticker  string `json:"ticker"`
	Year    *int   `json:"year,omitempty"`
	Quarter *int   `json:"quarter,omitempty"`
}

type CachedReportBlockResponse struct {
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	ReportData *ReportPayload `json:"report_data,omitempty"`
}

type PeriodsBlockResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	PeriodsList []PeriodItem `json:"periods_list,omitempty"`
}

type QuestionsBlockResponse struct {
	Status        string         `json:"status"`
	Message       string         `json:"message"`
	QuestionsList []QuestionItem `json:"questions_list,omitempty"`
}

type SummaryBlockRequest struct {
	Ticker        string   `json:"ticker"`
	ReportPeriod  string   `json:"report_period,omitempty"`
	Questions     []string `json:"questions,omitempty"`
	QuestionGroup string   `json:"question_group,omitempty"`
}

type SummaryBlockResponse struct {
	Status        string         `json:"status"`
	Message       string         `json:"message"`
	SummaryResult *ReportPayload `json:"summary_result,omitempty"`
}

type PeriodsMarkdownBlockRequest struct {
	Ticker      string       `json:"ticker"`
	PeriodsList []PeriodItem `json:"periods_list"`
}

type PeriodsMarkdownBlockResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Content      string `json:"content,omitempty"`
	PeriodsCount int    `json:"periods_count"`
}

type MarkdownBlockRequest struct {
	ReportData     ReportPayload `json:"report_data"`
	CompanyName    string        `json:"company_name,omitempty"`
	OutputFilename string        `json:"output_filename,omitempty"`
	OutputDir      string        `json:"output_dir,omitempty"`
}

type MarkdownBlockResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Content string `json:"content,omitempty"`
	Path    string `json:"path,omitempty"`
	Title   string `json:"title,omitempty"`
}

type PdfBlockRequest struct {
	Content    string `json:"content,omitempty"`
	Path       string `json:"path,omitempty"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	Theme      string `json:"theme,omitempty"`
	IncludeTOC bool   `json:"include_toc,omitempty"`
	OutputPath string `json:"output_path"`
}

type PdfBlockResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Location  string `json:"location,omitempty"`
}

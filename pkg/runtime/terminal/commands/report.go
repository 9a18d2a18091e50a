package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/report-atlas/pkg/adapters"
	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/render/markdown"
	"github.com/de-tools/report-atlas/pkg/services/report"
)

type reportCmd struct {
	deps    Dependencies
	apiKey  string
	ticker  string
	year    int
	quarter int
}

// NewReportCmd fetches a cached financial report.
func NewReportCmd(deps Dependencies) *cobra.Command {
	rc := &reportCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Retrieve a cached financial report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.apiKey, "api-key", "", "Market Lens API key (defaults to $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&rc.ticker, "ticker", "", "Stock ticker, e.g. AAPL")
	cmd.Flags().IntVar(&rc.year, "year", 0, "Report year (optional)")
	cmd.Flags().IntVar(&rc.quarter, "quarter", 0, "Report quarter 1-4 (optional)")
	_ = cmd.MarkFlagRequired("ticker")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := rc.deps.NewService(resolveAPIKey(rc.apiKey))
	if err != nil {
		return err
	}

	query := domain.ReportQuery{Ticker: rc.ticker}
	if rc.year != 0 {
		query.Year = &rc.year
	}
	if rc.quarter != 0 {
		query.Quarter = &rc.quarter
	}

	result := svc.GetCachedReport(cmd.Context(), query)
	resp := api.CachedReportBlockResponse{
		Status:  string(result.Status()),
		Message: result.Message(),
	}
	if data, ok := result.Payload(); ok {
		payload := adapters.MapReportDataDomainToApi(data)
		resp.ReportData = &payload
	}
	return printEnvelope(rc.deps.Out, resp, result.Err())
}

type periodsCmd struct {
	deps       Dependencies
	apiKey     string
	ticker     string
	asMarkdown bool
}

// NewPeriodsCmd lists the periods a cached report exists for.
func NewPeriodsCmd(deps Dependencies) *cobra.Command {
	pc := &periodsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List cached report periods",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.apiKey, "api-key", "", "Market Lens API key (defaults to $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&pc.ticker, "ticker", "", "Stock ticker, e.g. AAPL")
	cmd.Flags().BoolVar(&pc.asMarkdown, "markdown", false, "Print the periods as a Markdown overview instead of JSON")
	_ = cmd.MarkFlagRequired("ticker")

	return cmd
}

func (pc *periodsCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := pc.deps.NewService(resolveAPIKey(pc.apiKey))
	if err != nil {
		return err
	}

	result := svc.GetCachedPeriods(cmd.Context(), pc.ticker)

	if pc.asMarkdown && result.Err() == nil {
		periods, _ := result.Payload()
		doc, err := markdown.RenderPeriods(pc.ticker, periods, time.Now())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(pc.deps.Out, doc.Content)
		return err
	}

	resp := api.PeriodsBlockResponse{
		Status:  string(result.Status()),
		Message: result.Message(),
	}
	if periods, ok := result.Payload(); ok {
		resp.PeriodsList = adapters.MapPeriodsDomainToApi(periods)
	}
	return printEnvelope(pc.deps.Out, resp, result.Err())
}

type questionsCmd struct {
	deps   Dependencies
	apiKey string
	group  string
}

// NewQuestionsCmd lists the predefined analysis questions.
func NewQuestionsCmd(deps Dependencies) *cobra.Command {
	qc := &questionsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List predefined report questions",
		RunE:  qc.run,
	}

	cmd.Flags().StringVar(&qc.apiKey, "api-key", "", "Market Lens API key (defaults to $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&qc.group, "group", "", "Question group: brief or detailed (optional)")

	return cmd
}

func (qc *questionsCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := qc.deps.NewService(resolveAPIKey(qc.apiKey))
	if err != nil {
		return err
	}

	result := svc.GetPredefinedQuestions(cmd.Context(), domain.QuestionGroup(qc.group))
	resp := api.QuestionsBlockResponse{
		Status:  string(result.Status()),
		Message: result.Message(),
	}
	if questions, ok := result.Payload(); ok {
		resp.QuestionsList = adapters.MapQuestionsDomainToApi(questions)
	}
	return printEnvelope(qc.deps.Out, resp, result.Err())
}

type summaryCmd struct {
	deps      Dependencies
	apiKey    string
	ticker    string
	period    string
	questions []string
	group     string
}

// NewSummaryCmd generates a customized report summary.
func NewSummaryCmd(deps Dependencies) *cobra.Command {
	sc := &summaryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate a report summary",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.apiKey, "api-key", "", "Market Lens API key (defaults to $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&sc.ticker, "ticker", "", "Stock ticker, e.g. AAPL")
	cmd.Flags().StringVar(&sc.period, "period", "", "Report period, e.g. 2023 or 2023Q4 (optional)")
	cmd.Flags().StringArrayVar(&sc.questions, "question", nil, "Question to answer (repeatable)")
	cmd.Flags().StringVar(&sc.group, "group", "", "Predefined question group: brief or detailed")
	_ = cmd.MarkFlagRequired("ticker")

	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := sc.deps.NewService(resolveAPIKey(sc.apiKey))
	if err != nil {
		return err
	}

	result := svc.GenerateReportSummary(cmd.Context(), report.SummaryRequest{
		Ticker:    sc.ticker,
		Period:    sc.period,
		Questions: sc.questions,
		Group:     domain.QuestionGroup(sc.group),
	})
	resp := api.SummaryBlockResponse{
		Status:  string(result.Status()),
		Message: result.Message(),
	}
	if data, ok := result.Payload(); ok {
		payload := adapters.MapReportDataDomainToApi(data)
		resp.SummaryResult = &payload
	}
	return printEnvelope(sc.deps.Out, resp, result.Err())
}

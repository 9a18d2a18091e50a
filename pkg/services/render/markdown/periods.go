package markdown

import (
	"bytes"
	"sort"
	"strconv"
	"text/template"
	"time"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// PeriodsDocument is the rendered period overview plus the count the
// workflow host branches on.
type PeriodsDocument struct {
	Content string
	Count   int
}

const periodsTemplate = `# Cached Report Periods

*Generated on: {{.GeneratedAt}}*

**Total Periods Available: {{.Count}}**

{{if .Rows}}## Available Periods for {{.Ticker}}

| Year | Quarter | Period |
|------|---------|--------|
{{range .Rows}}| {{.Year}} | {{.Quarter}} | {{.Label}} |
{{end}}{{else}}No cached periods available.
{{end}}`

type periodRow struct {
	Year    int
	Quarter string
	Label   string
}

type periodsView struct {
	GeneratedAt string
	Ticker      string
	Count       int
	Rows        []periodRow
}

var periodsTmpl = template.Must(template.New("periods").Parse(periodsTemplate))

// RenderPeriods turns the cached-periods listing for a ticker into a
// Markdown overview with one table row per period, sorted by year then
// quarter. generatedAt is injected so output stays reproducible.
func RenderPeriods(ticker string, periods []domain.Period, generatedAt time.Time) (PeriodsDocument, error) {
	if ticker == "" {
		return PeriodsDocument{}, domain.Validationf("ticker must not be empty")
	}

	sorted := make([]domain.Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Quarter < sorted[j].Quarter
	})

	view := periodsView{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Ticker:      ticker,
		Count:       len(sorted),
	}
	for _, p := range sorted {
		quarter := "-"
		if p.Quarter != 0 {
			quarter = strconv.Itoa(p.Quarter)
		}
		view.Rows = append(view.Rows, periodRow{Year: p.Year, Quarter: quarter, Label: p.Label()})
	}

	var buf bytes.Buffer
	if err := periodsTmpl.Execute(&buf, view); err != nil {
		return PeriodsDocument{}, domain.Renderf("failed to render periods markdown: %v", err)
	}
	return PeriodsDocument{Content: buf.String(), Count: view.Count}, nil
}

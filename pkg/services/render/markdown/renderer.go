// Package markdown renders analyzed report data into a Markdown document.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// Document is the renderer's output: the content itself, where it was
// written, and the computed title. The title is forwarded to the PDF
// renderer so both documents share metadata.
type Document struct {
	Content string
	Path    string
	Title   string
}

const documentTemplate = `# {{.Title}}

---

{{range .Sections}}## {{.Number}}. {{.Category}}

{{range .Entries}}### {{.Number}} {{.Question}}

{{.Answer}}

---

{{end}}{{end}}`

type entryView struct {
	Number   string
	Question string
	Answer   string
}

type sectionView struct {
	Number   int
	Category string
	Entries  []entryView
}

type documentView struct {
	Title    string
	Sections []sectionView
}

var (
	tmpl             = template.Must(template.New("report").Parse(documentTemplate))
	unsafeFilename   = regexp.MustCompile(`[<>:"/\\|?*\s]+`)
	collapseUnderbar = regexp.MustCompile(`_+`)
)

// Render converts report into a Markdown document and writes it to
// opts.OutputDir. Sections follow the order categories first appear in the
// answers; within a section the original answer order is preserved.
// Rendering the same inputs twice yields byte-identical content.
func Render(report domain.ReportData, opts domain.RenderOptions) (Document, error) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		return Document{}, domain.Validationf("output dir must not be empty")
	}

	view := buildView(report, opts)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return Document{}, domain.Renderf("failed to render markdown: %v", err)
	}
	content := buf.String()

	filename := opts.OutputFilename
	if filename == "" {
		filename = defaultFilename(displayName(report, opts), report.Period)
	}
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Document{}, domain.IOf("failed to create output dir %s: %v", opts.OutputDir, err)
	}
	path := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Document{}, domain.IOf("failed to write %s: %v", path, err)
	}

	return Document{Content: content, Path: path, Title: view.Title}, nil
}

func buildView(report domain.ReportData, opts domain.RenderOptions) documentView {
	view := documentView{
		Title: fmt.Sprintf("%s Financial Analysis Report (%s)",
			displayName(report, opts), report.Period.Label()),
	}

	index := map[string]int{}
	for _, answer := range report.Answers {
		question := strings.TrimSpace(answer.Question.Text)
		// Literal \n sequences arrive escaped from the API.
		text := strings.ReplaceAll(strings.TrimSpace(answer.Text), `\n`, "\n")
		if question == "" || text == "" {
			continue
		}

		category := answer.Question.Category
		if category == "" {
			category = "General"
		}
		pos, ok := index[category]
		if !ok {
			pos = len(view.Sections)
			index[category] = pos
			view.Sections = append(view.Sections, sectionView{
				Number:   pos + 1,
				Category: category,
			})
		}

		section := &view.Sections[pos]
		section.Entries = append(section.Entries, entryView{
			Number:   fmt.Sprintf("%d.%d", section.Number, len(section.Entries)+1),
			Question: question,
			Answer:   text,
		})
	}

	return view
}

func displayName(report domain.ReportData, opts domain.RenderOptions) string {
	if opts.CompanyName != "" {
		return opts.CompanyName
	}
	return report.Ticker
}

func defaultFilename(name string, period domain.Period) string {
	base := unsafeFilename.ReplaceAllString(name, "_")
	base = collapseUnderbar.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "financial_report"
	}
	return fmt.Sprintf("%s_%s.md", base, period.Label())
}

package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

const sampleMarkdown = `# Apple Inc. Financial Analysis Report (2023Q4)

---

## 1. Financials

### 1.1 How did revenue develop?

Revenue grew 5%. Key drivers:

- iPhone demand held up
- Services hit a record
  - App Store
  - iCloud

---

## 2. Risks

### 2.1 What are the key risks?

> Regulatory pressure in the EU remains the main overhang.

` + "```" + `
EPS (diluted): 2.18
` + "```" + `
`

func TestRender_WritesPdf(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	art, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
		Title:      "Apple Inc. Financial Analysis Report (2023Q4)",
		Author:     "report-atlas",
		OutputPath: out,
	})
	require.NoError(t, err)

	assert.Equal(t, out, art.Path)
	assert.Greater(t, art.SizeBytes, int64(0))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Equal(t, int64(len(data)), art.SizeBytes)
}

func TestRender_AllThemes(t *testing.T) {
	for _, theme := range []domain.ThemeName{domain.ThemeDefault, domain.ThemeMinimal, domain.ThemeProfessional} {
		t.Run(string(theme), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "report.pdf")

			art, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
				Theme:      theme,
				OutputPath: out,
			})
			require.NoError(t, err)
			assert.Greater(t, art.SizeBytes, int64(0))
		})
	}
}

func TestRender_UnknownTheme_NoFileWritten(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	_, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
		Theme:      "neon",
		OutputPath: out,
	})

	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_WithTOC(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	withTOC, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
		IncludeTOC: true,
		OutputPath: out,
	})
	require.NoError(t, err)

	plain, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
		OutputPath: filepath.Join(t.TempDir(), "plain.pdf"),
	})
	require.NoError(t, err)

	// The TOC page makes the document strictly larger.
	assert.Greater(t, withTOC.SizeBytes, plain.SizeBytes)
}

func TestRender_FromFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(src, []byte(sampleMarkdown), 0o644))

	art, err := Render(Source{Path: src}, domain.PdfOptions{OutputPath: filepath.Join(dir, "report.pdf")})

	require.NoError(t, err)
	assert.Greater(t, art.SizeBytes, int64(0))
}

func TestRender_MissingFile(t *testing.T) {
	_, err := Render(Source{Path: filepath.Join(t.TempDir(), "missing.md")},
		domain.PdfOptions{OutputPath: filepath.Join(t.TempDir(), "report.pdf")})

	require.Error(t, err)
	assert.Equal(t, domain.ErrIO, domain.KindOf(err))
}

func TestRender_BothSources(t *testing.T) {
	_, err := Render(Source{Content: "# x", Path: "report.md"},
		domain.PdfOptions{OutputPath: filepath.Join(t.TempDir(), "report.pdf")})

	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
}

func TestRender_NeitherSource(t *testing.T) {
	_, err := Render(Source{}, domain.PdfOptions{OutputPath: filepath.Join(t.TempDir(), "report.pdf")})

	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
}

func TestRender_EmptyContent(t *testing.T) {
	_, err := Render(Source{Content: "   \n"}, domain.PdfOptions{OutputPath: filepath.Join(t.TempDir(), "report.pdf")})

	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
}

func TestRender_EmptyOutputPath(t *testing.T) {
	_, err := Render(Source{Content: "# x"}, domain.PdfOptions{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))
}

func TestRender_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()

	_, err := Render(Source{Content: sampleMarkdown}, domain.PdfOptions{
		OutputPath: filepath.Join(dir, "report.pdf"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.pdf", entries[0].Name())
}

func TestRender_TOCLinksCoverNestedHeadings(t *testing.T) {
	source := []byte("# First\n\n> ## Quoted heading\n\n- ### Listed heading\n\n## Second\n")

	headings := CollectHeadings(source)
	require.Len(t, headings, 4)

	theme, err := themeByName("")
	require.NoError(t, err)
	r := newRenderer(theme, domain.PdfOptions{})
	r.writeTOC(headings)
	r.pdf.AddPage()

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		r.renderBlock(node, source, 0)
	}

	// Every outline entry must have claimed its link target.
	assert.Equal(t, len(headings), r.headingSeen)
	require.NoError(t, r.pdf.Error())
}

func TestRender_TOCWithQuotedHeading(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	art, err := Render(Source{Content: "# First\n\n> ## Quoted heading\n\n## Second\n"}, domain.PdfOptions{
		IncludeTOC: true,
		OutputPath: out,
	})
	require.NoError(t, err)
	assert.Greater(t, art.SizeBytes, int64(0))
}

func TestCollectHeadings(t *testing.T) {
	headings := CollectHeadings([]byte(sampleMarkdown))

	require.Len(t, headings, 5)
	assert.Equal(t, Heading{Level: 1, Text: "Apple Inc. Financial Analysis Report (2023Q4)"}, headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "1. Financials"}, headings[1])
	assert.Equal(t, Heading{Level: 3, Text: "1.1 How did revenue develop?"}, headings[2])
	assert.Equal(t, Heading{Level: 2, Text: "2. Risks"}, headings[3])
	assert.Equal(t, Heading{Level: 3, Text: "2.1 What are the key risks?"}, headings[4])
}

func TestCollectHeadings_StripsInlineMarkup(t *testing.T) {
	headings := CollectHeadings([]byte("## Margins were **strong** this quarter\n"))

	require.Len(t, headings, 1)
	assert.Equal(t, "Margins were strong this quarter", headings[0].Text)
}

func TestCollectHeadings_NoHeadings(t *testing.T) {
	assert.Empty(t, CollectHeadings([]byte("just a paragraph\n")))
}

// Package pdf converts Markdown into a styled PDF document. Goldmark parses
// the document structure; fpdf handles page layout, the themed styling, the
// table of contents and page numbering.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// Source supplies the markdown either inline or from a file.
// Exactly one of the two fields must be set.
type Source struct {
	Content string
	Path    string
}

// Artifact describes the written PDF. SizeBytes is a post-condition check
// usable by callers and tests.
type Artifact struct {
	Path      string
	SizeBytes int64
}

// Render converts src into a PDF at opts.OutputPath. The file is written to
// a temporary path and renamed into place, so a cancelled or failed render
// never leaves a partial document behind.
func Render(src Source, opts domain.PdfOptions) (Artifact, error) {
	theme, err := themeByName(opts.Theme)
	if err != nil {
		return Artifact{}, err
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return Artifact{}, domain.Validationf("output path must not be empty")
	}

	source, err := resolveSource(src)
	if err != nil {
		return Artifact{}, err
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	headings := CollectHeadings(source)

	r := newRenderer(theme, opts)
	if opts.IncludeTOC && len(headings) > 0 {
		r.writeTOC(headings)
	}
	r.pdf.AddPage()
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		r.renderBlock(node, source, 0)
	}

	if err := r.pdf.Error(); err != nil {
		return Artifact{}, domain.Renderf("pdf generation failed: %v", err)
	}

	return writeAtomic(r.pdf, opts.OutputPath)
}

func resolveSource(src Source) ([]byte, error) {
	switch {
	case src.Content != "" && src.Path != "":
		return nil, domain.Validationf("provide either inline content or a file path, not both")
	case src.Content == "" && src.Path == "":
		return nil, domain.Validationf("either inline content or a file path is required")
	case src.Path != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, domain.IOf("failed to read markdown file %s: %v", src.Path, err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, domain.Validationf("markdown file %s is empty", src.Path)
		}
		return data, nil
	default:
		if strings.TrimSpace(src.Content) == "" {
			return nil, domain.Validationf("markdown content must not be empty")
		}
		return []byte(src.Content), nil
	}
}

type renderer struct {
	pdf         *fpdf.Fpdf
	theme       Theme
	tr          func(string) string
	tocLinks    []int
	headingSeen int
}

func newRenderer(theme Theme, opts domain.PdfOptions) *renderer {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(opts.Title, true)
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	doc.SetMargins(theme.margin, theme.margin, theme.margin)
	doc.SetAutoPageBreak(true, theme.margin)
	doc.AliasNbPages("")

	r := &renderer{
		pdf:   doc,
		theme: theme,
		tr:    doc.UnicodeTranslatorFromDescriptor(""),
	}

	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont(theme.bodyFont, "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", doc.PageNo()),
			"", 0, "C", false, 0, "")
	})

	return r
}

// writeTOC emits the outline as the first page; every entry links to the
// page its heading ends up on.
func (r *renderer) writeTOC(headings []Heading) {
	pdf, theme := r.pdf, r.theme
	pdf.AddPage()

	pdf.SetFont(theme.headingFont, "B", theme.headingSize(1))
	pdf.SetTextColor(theme.heading.r, theme.heading.g, theme.heading.b)
	pdf.CellFormat(0, 12, r.tr("Table of Contents"), "", 1, "L", false, 0, "")
	r.accentRule()
	pdf.Ln(4)

	minLevel := headings[0].Level
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	left, _, _, _ := pdf.GetMargins()
	pdf.SetFont(theme.bodyFont, "", theme.bodySize)
	pdf.SetTextColor(theme.accent.r, theme.accent.g, theme.accent.b)
	r.tocLinks = make([]int, len(headings))
	for i, h := range headings {
		r.tocLinks[i] = pdf.AddLink()
		pdf.SetX(left + float64(h.Level-minLevel)*6)
		pdf.WriteLinkID(6, r.tr(h.Text), r.tocLinks[i])
		pdf.Ln(6)
	}
}

func (r *renderer) renderBlock(node ast.Node, source []byte, indent float64) {
	switch n := node.(type) {
	case *ast.Heading:
		r.writeHeading(n.Level, nodeText(n, source))
	case *ast.Paragraph, *ast.TextBlock:
		r.writeParagraph(nodeText(node, source), indent)
	case *ast.ThematicBreak:
		r.writeRule()
	case *ast.List:
		r.writeList(n, source, indent)
	case *ast.FencedCodeBlock:
		r.writeCode(linesText(node, source))
	case *ast.CodeBlock:
		r.writeCode(linesText(node, source))
	case *ast.Blockquote:
		// Headings keep their heading treatment even inside a quote,
		// otherwise TOC link IDs drift out of step with the outline.
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				r.writeQuote(nodeText(child, source), indent)
			default:
				r.renderBlock(child, source, indent+4)
			}
		}
	default:
		if txt := nodeText(node, source); txt != "" {
			r.writeParagraph(txt, indent)
		}
	}
}

func (r *renderer) writeHeading(level int, txt string) {
	pdf, theme := r.pdf, r.theme

	if r.headingSeen < len(r.tocLinks) {
		pdf.SetLink(r.tocLinks[r.headingSeen], -1, -1)
	}
	r.headingSeen++

	size := theme.headingSize(level)
	pdf.Ln(3)
	pdf.SetFont(theme.headingFont, "B", size)
	pdf.SetTextColor(theme.heading.r, theme.heading.g, theme.heading.b)
	pdf.MultiCell(0, size*0.5, r.tr(txt), "", "L", false)
	if level <= 2 {
		r.accentRule()
	}
	pdf.Ln(2)
}

func (r *renderer) writeParagraph(txt string, indent float64) {
	if txt == "" {
		return
	}
	pdf, theme := r.pdf, r.theme
	left, _, _, _ := pdf.GetMargins()
	pdf.SetX(left + indent)
	pdf.SetFont(theme.bodyFont, "", theme.bodySize)
	pdf.SetTextColor(theme.text.r, theme.text.g, theme.text.b)
	pdf.MultiCell(0, 5.5, r.tr(txt), "", "L", false)
	pdf.Ln(2)
}

func (r *renderer) writeList(list *ast.List, source []byte, indent float64) {
	marker := "-"
	number := 1
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		prefix := marker + " "
		if list.IsOrdered() {
			prefix = fmt.Sprintf("%d. ", number)
			number++
		}
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				r.writeList(c, source, indent+6)
			case *ast.Heading:
				r.writeHeading(c.Level, nodeText(c, source))
			default:
				r.writeParagraph(prefix+nodeText(child, source), indent)
				prefix = "  "
			}
		}
	}
}

func (r *renderer) writeCode(code string) {
	pdf, theme := r.pdf, r.theme
	pdf.SetFont("Courier", "", theme.bodySize-1.5)
	pdf.SetTextColor(theme.text.r, theme.text.g, theme.text.b)
	pdf.SetFillColor(245, 245, 245)
	pdf.MultiCell(0, 5, r.tr(code), "", "L", true)
	pdf.Ln(2)
}

func (r *renderer) writeQuote(txt string, indent float64) {
	if txt == "" {
		return
	}
	pdf, theme := r.pdf, r.theme
	left, _, _, _ := pdf.GetMargins()
	pdf.SetX(left + indent + 4)
	pdf.SetFont(theme.bodyFont, "I", theme.bodySize)
	pdf.SetTextColor(theme.text.r, theme.text.g, theme.text.b)
	pdf.MultiCell(0, 5.5, r.tr(txt), "", "L", false)
	pdf.Ln(2)
}

func (r *renderer) writeRule() {
	pdf := r.pdf
	left, _, right, _ := pdf.GetMargins()
	w, _ := pdf.GetPageSize()
	pdf.Ln(1)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	y := pdf.GetY()
	pdf.Line(left, y, w-right, y)
	pdf.Ln(4)
}

func (r *renderer) accentRule() {
	if !r.theme.headingRule {
		return
	}
	pdf, theme := r.pdf, r.theme
	left, _, right, _ := pdf.GetMargins()
	w, _ := pdf.GetPageSize()
	pdf.SetDrawColor(theme.accent.r, theme.accent.g, theme.accent.b)
	pdf.SetLineWidth(0.5)
	y := pdf.GetY() + 0.5
	pdf.Line(left, y, w-right, y)
	pdf.Ln(2)
}

func linesText(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// writeAtomic renders the document into a temp file next to the target and
// renames it into place, so the write is all-or-nothing.
func writeAtomic(doc *fpdf.Fpdf, outputPath string) (Artifact, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, domain.IOf("failed to create output dir %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.pdf")
	if err != nil {
		return Artifact{}, domain.IOf("failed to create temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := doc.Output(tmp); err != nil {
		cleanup()
		return Artifact{}, domain.Renderf("pdf generation failed: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return Artifact{}, domain.IOf("failed to flush %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Artifact{}, domain.IOf("failed to close %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return Artifact{}, domain.IOf("failed to move pdf into place at %s: %v", outputPath, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return Artifact{}, domain.IOf("failed to stat %s: %v", outputPath, err)
	}
	return Artifact{Path: outputPath, SizeBytes: info.Size()}, nil
}

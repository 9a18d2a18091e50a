package commands

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/de-tools/report-atlas/pkg/adapters"
	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/render/markdown"
	"github.com/de-tools/report-atlas/pkg/services/render/pdf"
	"github.com/de-tools/report-atlas/pkg/store/artifact"
)

type markdownCmd struct {
	deps        Dependencies
	input       string
	companyName string
	filename    string
	outputDir   string
}

// NewMarkdownCmd renders a report payload file into a Markdown document.
func NewMarkdownCmd(deps Dependencies) *cobra.Command {
	mc := &markdownCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Render report data into a Markdown document",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.input, "input", "", "Path to a report payload JSON file")
	cmd.Flags().StringVar(&mc.companyName, "company-name", "", "Company display name for the title")
	cmd.Flags().StringVar(&mc.filename, "filename", "", "Output filename (derived from ticker and period if omitted)")
	cmd.Flags().StringVar(&mc.outputDir, "output-dir", "", "Output directory (defaults to the configured render dir)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (mc *markdownCmd) run(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(mc.input)
	if err != nil {
		return domain.IOf("failed to read %s: %v", mc.input, err)
	}
	var payload api.ReportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Validationf("invalid report payload in %s: %v", mc.input, err)
	}

	outputDir := mc.outputDir
	if outputDir == "" {
		outputDir = mc.deps.Settings.Render.OutputDir
	}

	doc, err := markdown.Render(adapters.MapReportPayloadApiToDomain(payload), domain.RenderOptions{
		CompanyName:    mc.companyName,
		OutputFilename: mc.filename,
		OutputDir:      outputDir,
	})
	if err != nil {
		be := domain.AsBlockError(err)
		return printEnvelope(mc.deps.Out, api.MarkdownBlockResponse{
			Status:  string(domain.StatusError),
			Message: be.Message,
		}, be)
	}

	return printEnvelope(mc.deps.Out, api.MarkdownBlockResponse{
		Status:  string(domain.StatusSuccess),
		Message: "markdown document generated",
		Content: doc.Content,
		Path:    doc.Path,
		Title:   doc.Title,
	}, nil)
}

type pdfCmd struct {
	deps       Dependencies
	input      string
	output     string
	title      string
	author     string
	theme      string
	toc        bool
	publishDir string
}

// NewPdfCmd converts a Markdown file into a styled PDF.
func NewPdfCmd(deps Dependencies) *cobra.Command {
	pc := &pdfCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Convert a Markdown document to a styled PDF",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.input, "input", "", "Path to the Markdown file")
	cmd.Flags().StringVar(&pc.output, "output", "", "Output PDF path")
	cmd.Flags().StringVar(&pc.title, "title", "", "Document title")
	cmd.Flags().StringVar(&pc.author, "author", "", "Document author")
	cmd.Flags().StringVar(&pc.theme, "theme", "default", "Theme: default, minimal or professional")
	cmd.Flags().BoolVar(&pc.toc, "toc", false, "Insert a table of contents as the first page")
	cmd.Flags().StringVar(&pc.publishDir, "publish-dir", "", "Directory to publish the finished PDF to (optional)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (pc *pdfCmd) run(cmd *cobra.Command, _ []string) error {
	art, err := pdf.Render(pdf.Source{Path: pc.input}, domain.PdfOptions{
		Title:      pc.title,
		Author:     pc.author,
		Theme:      domain.ThemeName(pc.theme),
		IncludeTOC: pc.toc,
		OutputPath: pc.output,
	})
	if err != nil {
		be := domain.AsBlockError(err)
		return printEnvelope(pc.deps.Out, api.PdfBlockResponse{
			Status:  string(domain.StatusError),
			Message: be.Message,
		}, be)
	}

	resp := api.PdfBlockResponse{
		Status:    string(domain.StatusSuccess),
		Message:   "pdf document generated",
		Path:      art.Path,
		SizeBytes: art.SizeBytes,
	}
	if pc.publishDir != "" {
		store := artifact.NewLocal(pc.publishDir)
		location, err := store.Put(cmd.Context(), art.Path, filepath.Base(art.Path))
		if err != nil {
			be := domain.AsBlockError(err)
			return printEnvelope(pc.deps.Out, api.PdfBlockResponse{
				Status:  string(domain.StatusError),
				Message: be.Message,
			}, be)
		}
		resp.Location = location
	}
	return printEnvelope(pc.deps.Out, resp, nil)
}

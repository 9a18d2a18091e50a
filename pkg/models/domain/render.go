package domain

// RenderOptions configures the Markdown renderer.
type RenderOptions struct {
	// CompanyName overrides the ticker in the document title when set.
	CompanyName string
	// OutputFilename overrides the derived "<name>_<period>.md" default.
	OutputFilename string
	OutputDir      string
}

// ThemeName selects one of the built-in PDF styling bundles.
type ThemeName string

const (
	ThemeDefault      ThemeName = "default"
	ThemeMinimal      ThemeName = "minimal"
	ThemeProfessional ThemeName = "professional"
)

// PdfOptions configures the PDF renderer.
type PdfOptions struct {
	Title      string
	Author     string
	Theme      ThemeName
	IncludeTOC bool
	OutputPath string
}

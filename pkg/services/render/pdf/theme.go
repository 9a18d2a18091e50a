package pdf

import (
	"github.com/de-tools/report-atlas/pkg/models/domain"
)

type rgb struct {
	r, g, b int
}

// Theme bundles the visual styling rules of a PDF document: fonts, heading
// colors, margins and the accent rule drawn under top-level headings.
type Theme struct {
	name        domain.ThemeName
	bodyFont    string
	headingFont string
	bodySize    float64
	heading     rgb
	accent      rgb
	text        rgb
	margin      float64
	headingRule bool
}

var themes = map[domain.ThemeName]Theme{
	domain.ThemeDefault: {
		name:        domain.ThemeDefault,
		bodyFont:    "Helvetica",
		headingFont: "Helvetica",
		bodySize:    10.5,
		heading:     rgb{44, 62, 80},
		accent:      rgb{52, 152, 219},
		text:        rgb{51, 51, 51},
		margin:      20,
		headingRule: true,
	},
	domain.ThemeMinimal: {
		name:        domain.ThemeMinimal,
		bodyFont:    "Helvetica",
		headingFont: "Helvetica",
		bodySize:    10,
		heading:     rgb{0, 0, 0},
		accent:      rgb{0, 0, 0},
		text:        rgb{0, 0, 0},
		margin:      25,
		headingRule: false,
	},
	domain.ThemeProfessional: {
		name:        domain.ThemeProfessional,
		bodyFont:    "Times",
		headingFont: "Helvetica",
		bodySize:    11,
		heading:     rgb{31, 58, 95},
		accent:      rgb{154, 123, 79},
		text:        rgb{40, 40, 40},
		margin:      18,
		headingRule: true,
	},
}

// themeByName resolves a theme, failing validation on unknown names.
func themeByName(name domain.ThemeName) (Theme, error) {
	if name == "" {
		name = domain.ThemeDefault
	}
	theme, ok := themes[name]
	if !ok {
		return Theme{}, domain.Validationf(
			"unknown theme %q, expected default, minimal or professional", name)
	}
	return theme, nil
}

// headingSize maps a markdown heading level onto a font size.
func (t Theme) headingSize(level int) float64 {
	switch level {
	case 1:
		return 20
	case 2:
		return 15
	case 3:
		return 12.5
	default:
		return 11
	}
}

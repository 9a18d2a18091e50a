package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// QuestionGroup names a preset selecting which predefined questions
// a summary is built from.
type QuestionGroup string

const (
	QuestionGroupBrief    QuestionGroup = "brief"
	QuestionGroupDetailed QuestionGroup = "detailed"
)

func (g QuestionGroup) Valid() bool {
	return g == QuestionGroupBrief || g == QuestionGroupDetailed
}

// ReportQuery identifies a requested financial report. Year and Quarter are
// optional; when Quarter is set it must be in 1..4.
type ReportQuery struct {
	Ticker  string
	Year    *int
	Quarter *int
}

func (q ReportQuery) Validate() error {
	if strings.TrimSpace(q.Ticker) == "" {
		return Validationf("ticker must not be empty")
	}
	if q.Quarter != nil && (*q.Quarter < 1 || *q.Quarter > 4) {
		return Validationf("quarter must be in 1..4, got %d", *q.Quarter)
	}
	if q.Year != nil && *q.Year <= 0 {
		return Validationf("year must be positive, got %d", *q.Year)
	}
	return nil
}

// Period is a reporting period. Quarter 0 means a full-year period.
type Period struct {
	Year    int
	Quarter int
}

// Label renders the period in the API's compact form: "2023" or "2023Q4".
func (p Period) Label() string {
	if p.Quarter == 0 {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// ParsePeriod parses the compact period form produced by Label.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, Validationf("period must not be empty")
	}
	yearPart, quarterPart, hasQuarter := strings.Cut(strings.ToUpper(s), "Q")
	year, err := strconv.Atoi(yearPart)
	if err != nil || year <= 0 {
		return Period{}, Validationf("invalid period %q", s)
	}
	p := Period{Year: year}
	if hasQuarter {
		quarter, err := strconv.Atoi(quarterPart)
		if err != nil || quarter < 1 || quarter > 4 {
			return Period{}, Validationf("invalid period %q", s)
		}
		p.Quarter = quarter
	}
	return p, nil
}

// Question is a predefined analysis question sourced from the API.
type Question struct {
	ID       string
	Text     string
	Category string
	Group    QuestionGroup
}

// Answer pairs a question with its generated answer text. The answer is
// opaque to this repository and is never reformatted.
type Answer struct {
	Question Question
	Text     string
}

// ReportData is a complete analyzed report for one ticker and period.
// Answers keep the order the API returned them in.
type ReportData struct {
	Ticker  string
	Period  Period
	Answers []Answer
}

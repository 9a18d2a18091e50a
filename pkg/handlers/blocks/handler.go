// Package blocks exposes each workflow block as an HTTP endpoint. The host
// platform resolves secrets before calling, so every request arrives with a
// ready-to-use bearer key.
package blocks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/report-atlas/pkg/adapters"
	"github.com/de-tools/report-atlas/pkg/models/api"
	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/render/markdown"
	"github.com/de-tools/report-atlas/pkg/services/render/pdf"
	"github.com/de-tools/report-atlas/pkg/services/report"
	"github.com/de-tools/report-atlas/pkg/store/artifact"
)

// ServiceFactory builds a report service around the credential supplied
// with the current request.
type ServiceFactory func(apiKey string) (*report.Service, error)

type Handler struct {
	newService ServiceFactory
	outputDir  string
	publisher  artifact.Store
}

// NewHandler wires the block endpoints. publisher may be nil, in which case
// rendered PDFs stay wherever the request asked for them.
func NewHandler(factory ServiceFactory, outputDir string, publisher artifact.Store) *Handler {
	return &Handler{
		newService: factory,
		outputDir:  outputDir,
		publisher:  publisher,
	}
}

// errorBody is the envelope every failed block responds with. Payload
// fields are omitted on error, so one shape serves all blocks.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) GetCachedReport(w http.ResponseWriter, r *http.Request) {
	var req api.CachedReportBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	svc, err := h.service(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := svc.GetCachedReport(r.Context(), domain.ReportQuery{
		Ticker:  req.Ticker,
		Year:    req.Year,
		Quarter: req.Quarter,
	})
	if err := result.Err(); err != nil {
		h.writeError(w, r, err)
		return
	}

	data, _ := result.Payload()
	payload := adapters.MapReportDataDomainToApi(data)
	h.writeJSON(w, r, http.StatusOK, api.CachedReportBlockResponse{
		Status:     string(result.Status()),
		Message:    result.Message(),
		ReportData: &payload,
	})
}

func (h *Handler) GetCachedPeriods(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := svc.GetCachedPeriods(r.Context(), r.URL.Query().Get("ticker"))
	if err := result.Err(); err != nil {
		h.writeError(w, r, err)
		return
	}

	periods, _ := result.Payload()
	h.writeJSON(w, r, http.StatusOK, api.PeriodsBlockResponse{
		Status:      string(result.Status()),
		Message:     result.Message(),
		PeriodsList: adapters.MapPeriodsDomainToApi(periods),
	})
}

func (h *Handler) GetPredefinedQuestions(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	group := domain.QuestionGroup(r.URL.Query().Get("group"))
	result := svc.GetPredefinedQuestions(r.Context(), group)
	if err := result.Err(); err != nil {
		h.writeError(w, r, err)
		return
	}

	questions, _ := result.Payload()
	h.writeJSON(w, r, http.StatusOK, api.QuestionsBlockResponse{
		Status:        string(result.Status()),
		Message:       result.Message(),
		QuestionsList: adapters.MapQuestionsDomainToApi(questions),
	})
}

func (h *Handler) GenerateReportSummary(w http.ResponseWriter, r *http.Request) {
	var req api.SummaryBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	svc, err := h.service(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := svc.GenerateReportSummary(r.Context(), report.SummaryRequest{
		Ticker:    req.Ticker,
		Period:    req.ReportPeriod,
		Questions: req.Questions,
		Group:     domain.QuestionGroup(req.QuestionGroup),
	})
	if err := result.Err(); err != nil {
		h.writeError(w, r, err)
		return
	}

	data, _ := result.Payload()
	payload := adapters.MapReportDataDomainToApi(data)
	h.writeJSON(w, r, http.StatusOK, api.SummaryBlockResponse{
		Status:        string(result.Status()),
		Message:       result.Message(),
		SummaryResult: &payload,
	})
}

func (h *Handler) RenderPeriodsMarkdown(w http.ResponseWriter, r *http.Request) {
	var req api.PeriodsMarkdownBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	doc, err := markdown.RenderPeriods(req.Ticker,
		adapters.MapPeriodsApiToDomain(req.PeriodsList), time.Now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, api.PeriodsMarkdownBlockResponse{
		Status:       string(domain.StatusSuccess),
		Message:      fmt.Sprintf("rendered %d cached periods", doc.Count),
		Content:      doc.Content,
		PeriodsCount: doc.Count,
	})
}

func (h *Handler) RenderMarkdown(w http.ResponseWriter, r *http.Request) {
	var req api.MarkdownBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = h.outputDir
	}

	doc, err := markdown.Render(adapters.MapReportPayloadApiToDomain(req.ReportData), domain.RenderOptions{
		CompanyName:    req.CompanyName,
		OutputFilename: req.OutputFilename,
		OutputDir:      outputDir,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, api.MarkdownBlockResponse{
		Status:  string(domain.StatusSuccess),
		Message: "markdown document generated",
		Content: doc.Content,
		Path:    doc.Path,
		Title:   doc.Title,
	})
}

func (h *Handler) RenderPdf(w http.ResponseWriter, r *http.Request) {
	var req api.PdfBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	art, err := pdf.Render(
		pdf.Source{Content: req.Content, Path: req.Path},
		domain.PdfOptions{
			Title:      req.Title,
			Author:     req.Author,
			Theme:      domain.ThemeName(req.Theme),
			IncludeTOC: req.IncludeTOC,
			OutputPath: req.OutputPath,
		},
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := api.PdfBlockResponse{
		Status:    string(domain.StatusSuccess),
		Message:   "pdf document generated",
		Path:      art.Path,
		SizeBytes: art.SizeBytes,
	}
	if h.publisher != nil {
		location, err := h.publisher.Put(r.Context(), art.Path, filepath.Base(art.Path))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		resp.Location = location
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) service(r *http.Request) (*report.Service, error) {
	key := bearerToken(r)
	if key == "" {
		return nil, domain.Authf("missing API key, expected an Authorization: Bearer header")
	}
	return h.newService(key)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	be := domain.AsBlockError(err)
	h.writeJSON(w, r, statusForKind(be.Kind), errorBody{
		Status:  string(domain.StatusError),
		Message: be.Message,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	logger := zerolog.Ctx(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode block response")
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrAuthentication:
		return http.StatusUnauthorized
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

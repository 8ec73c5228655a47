package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/exporter"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/middleware"
	"strikingdistance/internal/services"
	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// Multipart field names of the three uploaded exports
const (
	FieldQueries         = "queries"
	FieldKeywords        = "keywords"
	FieldCannibalisation = "cannibalisation"
)

// ConditionsHeader lists raised condition codes on file downloads
const ConditionsHeader = "X-Striking-Conditions"

// defaultMultipartMemory is kept in memory before parts spill to disk
const defaultMultipartMemory = 8 << 20

var uploadFields = []struct {
	field string
	table string
}{
	{FieldQueries, striking.TableQueries},
	{FieldKeywords, striking.TableKeywords},
	{FieldCannibalisation, striking.TableCannibalisation},
}

// opportunityForm holds the non-file multipart fields as sent
type opportunityForm struct {
	MinPosition     string `form:"min_position" validate:"omitempty,numeric"`
	MaxPosition     string `form:"max_position" validate:"omitempty,numeric"`
	ExcludeKeywords string `form:"exclude_keywords" validate:"max=4096"`
	CombineKeywords string `form:"combine_keywords" validate:"omitempty,oneof=true false on off 1 0"`
	Format          string `form:"format" validate:"omitempty,oneof=json csv xlsx"`
	Strict          string `form:"strict" validate:"omitempty,oneof=true false on off 1 0"`
}

// OpportunityHandler serves striking distance runs over uploaded exports
type OpportunityHandler struct {
	service      OpportunityServiceInterface
	validator    *middleware.RequestValidator
	writer       *exporter.Writer
	defaults     domain.Options
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewOpportunityHandler creates the handler. defaults fill any option the
// request leaves out; csvBOM prefixes CSV downloads with a UTF-8 BOM.
func NewOpportunityHandler(service OpportunityServiceInterface, defaults domain.Options, csvBOM bool, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *OpportunityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpportunityHandler{
		service:      service,
		validator:    middleware.NewRequestValidator(logger),
		writer:       exporter.NewWriter(nil, exporter.WriteOptions{BOMPrefix: csvBOM}, logger),
		defaults:     defaults,
		logger:       infrastructure.WithComponent(logger, "opportunity_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the opportunity routes
func (h *OpportunityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data"))
	r.Post("/", h.Analyze)
	return r
}

// Analyze handles POST /api/opportunities
func (h *OpportunityHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(defaultMultipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			h.logger.WarnContext(ctx, "upload too large", slog.Int64("limit", maxBytes.Limit))
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := opportunityForm{
		MinPosition:     strings.TrimSpace(r.FormValue("min_position")),
		MaxPosition:     strings.TrimSpace(r.FormValue("max_position")),
		ExcludeKeywords: r.FormValue("exclude_keywords"),
		CombineKeywords: strings.ToLower(strings.TrimSpace(r.FormValue("combine_keywords"))),
		Format:          strings.ToLower(strings.TrimSpace(r.FormValue("format"))),
		Strict:          strings.ToLower(strings.TrimSpace(r.FormValue("strict"))),
	}
	if err := h.validator.Struct(form); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	req, format, err := h.buildRequest(form)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var missing []string
	for _, f := range uploadFields {
		if _, _, err := r.FormFile(f.field); errors.Is(err, http.ErrMissingFile) {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		h.logger.WarnContext(ctx, "upload incomplete", slog.Any("missing", missing))
		h.errorHandler.HandleError(w, r, apierrors.MissingFilesError(missing))
		return
	}

	tables := make([]*striking.Table, len(uploadFields))
	for i, f := range uploadFields {
		file, header, err := r.FormFile(f.field)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		tables[i], err = h.service.LoadUpload(file, header.Filename, f.table)
		file.Close()
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}
	req.Inputs = striking.Inputs{Queries: tables[0], Keywords: tables[1], Cannibalisation: tables[2]}

	res, err := h.service.Analyze(ctx, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "opportunities computed",
		slog.Int("rows", len(res.Rows)),
		slog.Int("conditions", len(res.Conditions)),
		slog.String("format", string(format)))

	h.respond(w, r, format, res)
}

func (h *OpportunityHandler) buildRequest(form opportunityForm) (services.AnalyzeRequest, exporter.Format, error) {
	req := services.AnalyzeRequest{Options: h.defaults}

	if form.MinPosition != "" {
		v, err := parsePosition(form.MinPosition)
		if err != nil {
			return req, "", apierrors.ErrValidation("min_position", err.Error())
		}
		req.Options.MinPosition = v
	}
	if form.MaxPosition != "" {
		v, err := parsePosition(form.MaxPosition)
		if err != nil {
			return req, "", apierrors.ErrValidation("max_position", err.Error())
		}
		req.Options.MaxPosition = v
	}
	if strings.TrimSpace(form.ExcludeKeywords) != "" {
		req.Options.ExcludeKeywords = form.ExcludeKeywords
	}
	if form.CombineKeywords != "" {
		req.Options.CombineKeywords = parseFlag(form.CombineKeywords)
	}
	req.Strict = parseFlag(form.Strict)

	format := exporter.FormatJSON
	if form.Format != "" {
		f, err := exporter.ParseFormat(form.Format)
		if err != nil {
			return req, "", apierrors.ErrValidation("format", err.Error())
		}
		format = f
	}

	return req, format, nil
}

func (h *OpportunityHandler) respond(w http.ResponseWriter, r *http.Request, format exporter.Format, res *striking.Result) {
	if format == exporter.FormatJSON {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, exporter.NewEnvelope(res))
		return
	}

	if len(res.Conditions) > 0 {
		codes := make([]string, 0, len(res.Conditions))
		for _, c := range res.Conditions {
			codes = append(codes, string(c.Code))
		}
		w.Header().Set(ConditionsHeader, strings.Join(codes, ","))
	}

	// Nothing to download
	if res.Has(striking.EmptyResult) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := h.writer.Write(&buf, format, res); err != nil {
		h.errorHandler.HandleError(w, r, fmt.Errorf("failed to encode %s export: %w", format, err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.DefaultFileName(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write download", slog.String("error", err.Error()))
	}
}

// parsePosition accepts whole positions, tolerating a trailing ".0"
func parsePosition(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("must be a whole number, got %q", s)
	}
	return int(f), nil
}

// parseFlag reads HTML checkbox and boolean values
func parseFlag(s string) bool {
	switch s {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}

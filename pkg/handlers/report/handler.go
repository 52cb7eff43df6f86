package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/spartan-home-services/eagleeye/pkg/adapters"
	"github.com/spartan-home-services/eagleeye/pkg/models/api"
	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/services/dump"
	"github.com/spartan-home-services/eagleeye/pkg/services/report"
)

type Generator interface {
	Generate(ctx context.Context, req report.Request) domain.Result
}

type Dumper interface {
	Collect(ctx context.Context, designID, projectID string) (*dump.Responses, error)
}

type Handler struct {
	generator  Generator
	dumper     Dumper
	reportsDir string

	// running admits one generation at a time.
	running sync.Mutex
}

func NewHandler(generator Generator, dumper Dumper, reportsDir string) *Handler {
	return &Handler{
		generator:  generator,
		dumper:     dumper,
		reportsDir: reportsDir,
	}
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	design := chi.URLParam(r, "design")
	project := r.URL.Query().Get("project")

	if !h.running.TryLock() {
		logger.Warn().Str("design", design).Msg("report generation already in progress")
		writeJSON(ctx, w, http.StatusConflict, api.Error{Error: "a report is already being generated"})
		return
	}
	defer h.running.Unlock()

	result := h.generator.Generate(ctx, report.Request{DesignID: design, ProjectID: project})

	status := http.StatusOK
	if !result.OK() {
		status = http.StatusBadGateway
	}
	writeJSON(ctx, w, status, adapters.MapResultDomainToApi(result))
}

func (h *Handler) GetRawResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	design := chi.URLParam(r, "design")
	project := r.URL.Query().Get("project")

	responses, err := h.dumper.Collect(ctx, design, project)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("design", design).Msg("failed to collect raw responses")
		writeJSON(ctx, w, http.StatusBadGateway, api.Error{Error: err.Error()})
		return
	}
	writeJSON(ctx, w, http.StatusOK, responses)
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" || filepath.Base(name) != name || !strings.HasSuffix(name, ".pdf") {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(h.reportsDir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Str("file", name).Msg("failed to stat report")
		http.Error(w, "failed to read report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

// Package report runs one design report from credential check to stored PDF.
package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spartan-home-services/eagleeye/pkg/adapters"
	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/models/store"
	"github.com/spartan-home-services/eagleeye/pkg/services/document"
	"github.com/spartan-home-services/eagleeye/pkg/store/aurora"
	"github.com/spartan-home-services/eagleeye/pkg/store/output"
)

const (
	DefaultTitle    = "Spartan EagleEye Report"
	DefaultAttempts = 3
	DefaultPause    = 2 * time.Second

	HeaderProjectOverview = "Project Overview"
	HeaderDesignDetails   = "System Design Details"
	HeaderFinancials      = "Financial Overview"
	HeaderVisualization   = "System Design Visualization"

	ImagesUnavailable = "System design images are currently unavailable."

	fileTimestampLayout = "20060102_150405"
)

// DocumentBuilder is the layout surface the generator writes into.
type DocumentBuilder interface {
	AddLogo(path string) bool
	AddTitle(text string)
	AddHeader(text string)
	AddParagraph(text string)
	AddTable(rows [][]string, columnWidths ...float64)
	AddImage(data []byte, widthFraction float64) bool
	Render() (*document.Rendered, error)
}

type Request struct {
	DesignID  string
	ProjectID string
}

type Dependencies struct {
	Service aurora.DesignService
	Images  aurora.ImageFetcher
	Output  output.Sink
	// Mirrors receive a copy of every stored document; failures are logged only.
	Mirrors []output.Sink
	Logger  zerolog.Logger

	// NewBuilder returns a fresh builder per run. Defaults to document.NewBuilder
	// with document.DefaultSettings.
	NewBuilder func(logger zerolog.Logger) DocumentBuilder
	Sleep      func(ctx context.Context, d time.Duration) error
	Clock      func() time.Time
	NewRunID   func() string
}

type Settings struct {
	LogoPath string
	Title    string
	Attempts int
	Pause    time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Title:    DefaultTitle,
		Attempts: DefaultAttempts,
		Pause:    DefaultPause,
	}
}

type Generator struct {
	deps     Dependencies
	settings Settings
}

func NewGenerator(deps Dependencies, settings Settings) *Generator {
	if deps.NewBuilder == nil {
		docSettings := document.DefaultSettings()
		deps.NewBuilder = func(logger zerolog.Logger) DocumentBuilder {
			return document.NewBuilder(logger, docSettings)
		}
	}
	if deps.Sleep == nil {
		deps.Sleep = sleepContext
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	if settings.Title == "" {
		settings.Title = DefaultTitle
	}
	if settings.Attempts <= 0 {
		settings.Attempts = DefaultAttempts
	}
	if settings.Pause < 0 {
		settings.Pause = 0
	}
	return &Generator{deps: deps, settings: settings}
}

// FileName is the stored name of a report generated at ts.
func FileName(designID string, ts time.Time) string {
	return fmt.Sprintf("aurora_solar_report_design_%s_%s.pdf", designID, ts.Format(fileTimestampLayout))
}

// run tracks the state of one Generate call.
type run struct {
	result domain.Result
	logger zerolog.Logger
}

func (r *run) transition(state domain.RunState) {
	r.logger.Info().
		Str("from", string(r.result.State)).
		Str("to", string(state)).
		Msg("report state changed")
	r.result.State = state
}

func (r *run) fail(kind domain.FailureKind, reason string, err error) domain.Result {
	r.logger.Error().
		Err(err).
		Str("state", string(r.result.State)).
		Str("failure", string(kind)).
		Msg(reason)
	r.result.State = domain.RunStateFailed
	r.result.Failure = kind
	r.result.Reason = reason
	return r.result
}

// fetched holds the remote data for one run. Optional parts are nil when absent.
type fetched struct {
	project *store.ProjectResponse
	summary *store.DesignSummaryResponse
	pricing *store.DesignPricingResponse
	assets  *store.DesignAssetsResponse
}

type mapped struct {
	overview   domain.ReportTable
	metrics    domain.ReportTable
	financials domain.ReportTable
	assets     []domain.Asset
	hasAssets  bool
}

// Generate executes a full run and never panics; every failure is reported
// on the returned Result.
func (g *Generator) Generate(ctx context.Context, req Request) (result domain.Result) {
	r := &run{
		result: domain.Result{
			RunID:    g.deps.NewRunID(),
			DesignID: req.DesignID,
			State:    domain.RunStateInit,
		},
	}
	r.logger = g.deps.Logger.With().
		Str("run_id", r.result.RunID).
		Str("design_id", req.DesignID).
		Logger()
	ctx = r.logger.WithContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			result = r.fail(domain.FailureInternal, "unexpected failure during report generation", fmt.Errorf("panic: %v", p))
		}
	}()

	if req.DesignID == "" {
		return r.fail(domain.FailureMandatoryDataMissing, "design id is required", nil)
	}

	if err := g.deps.Service.CheckCredentials(ctx); err != nil {
		return r.fail(domain.FailureCredentials, "credential validation failed", err)
	}
	r.transition(domain.RunStateCredentialsChecked)

	data, err := g.fetch(ctx, r, req)
	if err != nil {
		return r.fail(domain.FailureMandatoryDataMissing, "design summary unavailable", err)
	}
	r.transition(domain.RunStateDataFetched)

	m := g.mapData(r, data)
	r.transition(domain.RunStateMapped)

	builder := g.deps.NewBuilder(r.logger)
	g.build(ctx, r, builder, m)
	r.transition(domain.RunStateBuilt)

	rendered, err := builder.Render()
	if err != nil {
		return r.fail(domain.FailureRender, "render failed", err)
	}
	r.result.Pages = rendered.PageCount

	name := FileName(req.DesignID, g.deps.Clock())
	location, err := g.deps.Output.Store(ctx, name, rendered.Bytes)
	if err != nil {
		return r.fail(domain.FailureOutput, "failed to store report", err)
	}
	r.result.Location = location

	for _, mirror := range g.deps.Mirrors {
		copyLocation, err := mirror.Store(ctx, name, rendered.Bytes)
		if err != nil {
			r.logger.Warn().Err(err).Str("file", name).Msg("failed to mirror report")
			continue
		}
		r.result.Mirrors = append(r.result.Mirrors, copyLocation)
	}

	r.transition(domain.RunStateRendered)
	r.logger.Info().
		Str("location", location).
		Int("pages", r.result.Pages).
		Int("images", r.result.ImagesEmbedded).
		Msg("PDF report generated successfully")
	return r.result
}

func (g *Generator) fetch(ctx context.Context, r *run, req Request) (fetched, error) {
	var data fetched
	var err error

	data.summary, err = g.deps.Service.GetDesignSummary(ctx, req.DesignID)
	if err != nil {
		return data, fmt.Errorf("failed to fetch design summary: %w", err)
	}
	if data.summary == nil {
		return data, fmt.Errorf("failed to fetch design summary: %w", aurora.ErrEmptyPayload)
	}

	data.pricing, err = g.deps.Service.GetDesignPricing(ctx, req.DesignID)
	if err != nil {
		r.logger.Warn().Err(err).Msg("design pricing unavailable")
		data.pricing = nil
	}

	data.assets, err = g.deps.Service.GetDesignAssets(ctx, req.DesignID)
	if err != nil {
		r.logger.Warn().Err(err).Msg("design assets unavailable")
		data.assets = nil
	}

	if req.ProjectID != "" {
		data.project, err = g.deps.Service.GetProject(ctx, req.ProjectID)
		if err != nil {
			r.logger.Warn().Err(err).Str("project_id", req.ProjectID).Msg("project data unavailable")
			data.project = nil
		}
	}

	return data, nil
}

func (g *Generator) mapData(r *run, data fetched) mapped {
	var m mapped

	overview, ok := adapters.MapProjectOverview(data.project)
	if ok {
		m.overview = overview
	} else if data.project != nil {
		r.logger.Warn().Msg("project payload has no project object")
	}

	summary := adapters.MapStoreDesignToDomain(data.summary)
	m.metrics = adapters.MapDesignMetrics(summary)

	if pricing := adapters.MapStorePricingToDomain(data.pricing); pricing != nil {
		m.financials = adapters.MapFinancials(pricing.SystemPrice, summary.SystemSizeKW())
	}

	m.assets = adapters.MapStoreAssetsToDomain(data.assets)
	m.hasAssets = len(m.assets) > 0
	return m
}

func (g *Generator) build(ctx context.Context, r *run, b DocumentBuilder, m mapped) {
	if g.settings.LogoPath != "" {
		if _, err := os.Stat(g.settings.LogoPath); err == nil {
			b.AddLogo(g.settings.LogoPath)
		} else {
			r.logger.Warn().Err(err).Str("path", g.settings.LogoPath).Msg("logo not found")
		}
	}

	b.AddTitle(g.settings.Title)

	if m.overview != nil {
		b.AddHeader(HeaderProjectOverview)
		b.AddTable(m.overview)
	}

	b.AddHeader(HeaderDesignDetails)
	b.AddTable(m.metrics)

	if m.financials != nil {
		b.AddHeader(HeaderFinancials)
		b.AddTable(m.financials)
	}

	if m.hasAssets {
		b.AddHeader(HeaderVisualization)
		r.result.ImagesEmbedded = g.embedImages(ctx, r, b, m.assets)
	}
}

// embedImages downloads and embeds every eligible asset and returns how many
// made it into the document. When none did, a notice paragraph stands in.
func (g *Generator) embedImages(ctx context.Context, r *run, b DocumentBuilder, assets []domain.Asset) int {
	var eligible []domain.Asset
	for _, a := range assets {
		if a.Eligible() {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		r.logger.Warn().Int("assets", len(assets)).Msg("no eligible design images")
		b.AddParagraph(ImagesUnavailable)
		return 0
	}

	embedded := 0
	for _, asset := range eligible {
		if asset.URL == "" {
			r.logger.Warn().Str("asset", asset.Label()).Msg("skipping asset without url")
			continue
		}
		if g.embedWithRetry(ctx, r, b, asset) {
			embedded++
		}
		if ctx.Err() != nil {
			break
		}
	}

	if embedded == 0 {
		b.AddParagraph(ImagesUnavailable)
	}
	return embedded
}

func (g *Generator) embedWithRetry(ctx context.Context, r *run, b DocumentBuilder, asset domain.Asset) bool {
	logger := r.logger.With().Str("asset", asset.Label()).Logger()

	for attempt := 1; attempt <= g.settings.Attempts; attempt++ {
		data, err := g.deps.Images.FetchImage(ctx, asset.URL)
		if err == nil && b.AddImage(data, 0) {
			logger.Info().Int("attempt", attempt).Msg("image embedded")
			return true
		}
		if err == nil {
			err = fmt.Errorf("image could not be embedded")
		}
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", g.settings.Attempts).
			Msg("failed to embed image")

		if attempt == g.settings.Attempts {
			break
		}
		if err := g.deps.Sleep(ctx, g.settings.Pause); err != nil {
			logger.Warn().Err(err).Msg("retry interrupted")
			return false
		}
	}

	logger.Error().Msg("giving up on image")
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

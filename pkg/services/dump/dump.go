// Package dump captures the raw Aurora responses behind a report, for
// troubleshooting payload shapes.
package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/spartan-home-services/eagleeye/pkg/store/aurora"
	"github.com/spartan-home-services/eagleeye/pkg/store/output"
)

const fileTimestampLayout = "20060102_150405"

// Responses keeps the four payloads in a fixed order. A payload that could
// not be fetched is written as null.
type Responses struct {
	DesignSummary json.RawMessage `json:"Design Summary"`
	DesignPricing json.RawMessage `json:"Design Pricing"`
	DesignAssets  json.RawMessage `json:"Design Assets"`
	ProjectData   json.RawMessage `json:"Project Data"`
}

type Service struct {
	fetcher aurora.RawFetcher
	clock   func() time.Time
}

func NewService(fetcher aurora.RawFetcher, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{fetcher: fetcher, clock: clock}
}

// Collect validates the credentials and fetches every payload. Individual
// fetch failures are logged and left empty; only a credential failure is
// returned as an error.
func (s *Service) Collect(ctx context.Context, designID, projectID string) (*Responses, error) {
	logger := zerolog.Ctx(ctx)

	if err := s.fetcher.CheckCredentials(ctx); err != nil {
		return nil, fmt.Errorf("failed to validate API credentials: %w", err)
	}

	get := func(endpoint string) json.RawMessage {
		body, err := s.fetcher.FetchRaw(ctx, endpoint)
		if err != nil {
			logger.Warn().Err(err).Str("endpoint", endpoint).Msg("no data for endpoint")
			return nil
		}
		return body
	}

	out := &Responses{
		DesignSummary: get(aurora.DesignSummaryEndpoint(designID)),
		DesignPricing: get(aurora.DesignPricingEndpoint(designID)),
		DesignAssets:  get(aurora.DesignAssetsEndpoint(designID)),
	}
	if projectID != "" {
		out.ProjectData = get(aurora.ProjectEndpoint(projectID))
	}
	return out, nil
}

// Write emits the responses as JSON indented by two spaces.
func Write(w io.Writer, r *Responses) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode responses: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write responses: %w", err)
	}
	return nil
}

// Save writes the responses to "<prefix>_<YYYYMMDD_HHMMSS>.txt" and returns
// the resulting path. The prefix may include a directory.
func (s *Service) Save(ctx context.Context, prefix string, r *Responses) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode responses: %w", err)
	}

	dir, base := filepath.Split(prefix)
	if dir == "" {
		dir = "."
	}
	sink, err := output.NewDirectory(dir)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", base, s.clock().Format(fileTimestampLayout))
	return sink.Store(ctx, name, data)
}

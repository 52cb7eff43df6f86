package aurora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spartan-home-services/eagleeye/pkg/models/store"
)

const (
	DefaultBaseURL = "https://api.aurorasolar.com"
	DefaultTimeout = 30 * time.Second

	// UserDataURLPrefix marks pre-signed S3 links that must not receive API credentials.
	UserDataURLPrefix = "https://aurora-user-data.s3.amazonaws.com"

	maxBodyBytes  = 16 << 20
	maxImageBytes = 64 << 20
)

// DesignService is the read side of the Aurora API used to build a report.
type DesignService interface {
	CheckCredentials(ctx context.Context) error
	GetProject(ctx context.Context, projectID string) (*store.ProjectResponse, error)
	GetDesignSummary(ctx context.Context, designID string) (*store.DesignSummaryResponse, error)
	GetDesignPricing(ctx context.Context, designID string) (*store.DesignPricingResponse, error)
	GetDesignAssets(ctx context.Context, designID string) (*store.DesignAssetsResponse, error)
}

// ImageFetcher downloads binary image assets.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// RawFetcher exposes undecoded tenant-scoped responses.
type RawFetcher interface {
	CheckCredentials(ctx context.Context) error
	FetchRaw(ctx context.Context, endpoint string) (json.RawMessage, error)
}

type Settings struct {
	BaseURL    string
	TenantID   string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL  string
	tenantID string
	apiKey   string
	http     *http.Client
}

var (
	_ DesignService = (*Client)(nil)
	_ ImageFetcher  = (*Client)(nil)
	_ RawFetcher    = (*Client)(nil)
)

func NewClient(settings Settings) (*Client, error) {
	if settings.TenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	baseURL := strings.TrimRight(settings.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := settings.HTTPClient
	if httpClient == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  baseURL,
		tenantID: settings.TenantID,
		apiKey:   settings.APIKey,
		http:     httpClient,
	}, nil
}

func ProjectEndpoint(projectID string) string {
	return "/projects/" + url.PathEscape(projectID)
}

func DesignSummaryEndpoint(designID string) string {
	return "/designs/" + url.PathEscape(designID) + "/summary"
}

func DesignPricingEndpoint(designID string) string {
	return "/designs/" + url.PathEscape(designID) + "/pricing"
}

func DesignAssetsEndpoint(designID string) string {
	return "/designs/" + url.PathEscape(designID) + "/assets"
}

// CheckCredentials verifies the API key against the tenant record.
func (c *Client) CheckCredentials(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	_, err := c.do(ctx, c.tenantURL(""), c.apiHeaders(), maxBodyBytes)
	if err == nil {
		return nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized:
			err = ErrUnauthorized
		case http.StatusForbidden:
			err = ErrForbidden
		case http.StatusNotFound:
			err = ErrTenantNotFound
		}
	}
	logger.Error().Err(err).Str("tenant", c.tenantID).Msg("failed to validate credentials")
	return err
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*store.ProjectResponse, error) {
	return getJSON[store.ProjectResponse](ctx, c, ProjectEndpoint(projectID))
}

func (c *Client) GetDesignSummary(ctx context.Context, designID string) (*store.DesignSummaryResponse, error) {
	return getJSON[store.DesignSummaryResponse](ctx, c, DesignSummaryEndpoint(designID))
}

func (c *Client) GetDesignPricing(ctx context.Context, designID string) (*store.DesignPricingResponse, error) {
	return getJSON[store.DesignPricingResponse](ctx, c, DesignPricingEndpoint(designID))
}

func (c *Client) GetDesignAssets(ctx context.Context, designID string) (*store.DesignAssetsResponse, error) {
	return getJSON[store.DesignAssetsResponse](ctx, c, DesignAssetsEndpoint(designID))
}

// FetchRaw returns the JSON body of a tenant-scoped endpoint. Empty objects are
// reported as ErrEmptyPayload.
func (c *Client) FetchRaw(ctx context.Context, endpoint string) (json.RawMessage, error) {
	logger := zerolog.Ctx(ctx)

	body, err := c.do(ctx, c.tenantURL(endpoint), c.apiHeaders(), maxBodyBytes)
	if err != nil {
		return nil, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("invalid JSON in response")
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrEmptyPayload)
	}

	logger.Debug().Str("endpoint", endpoint).RawJSON("data", body).Msg("response data")
	return body, nil
}

// FetchImage downloads an image asset. Pre-signed S3 links are requested
// without the API credentials; anything that is not image/* is rejected.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("url", imageURL).Msg("downloading image")

	headers := c.apiHeaders()
	if strings.HasPrefix(imageURL, UserDataURLPrefix) {
		headers = http.Header{"Accept": []string{"image/*"}}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header = headers

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download image")
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer closeBody(logger, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &StatusError{URL: imageURL, StatusCode: resp.StatusCode}
		logger.Error().Err(err).Msg("failed to download image")
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		logger.Error().Str("content_type", contentType).Msg("received non-image content type")
		return nil, fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	logger.Info().Int("bytes", len(data)).Msg("downloaded image")
	return data, nil
}

func getJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	body, err := c.FetchRaw(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s response: %w", endpoint, err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, target string, headers http.Header, limit int64) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("method", http.MethodGet).Str("url", target).Msg("making request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = headers

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("url", target).Msg("request failed")
		return nil, fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer closeBody(logger, resp.Body)

	logger.Debug().Int("status", resp.StatusCode).Str("url", target).Msg("response received")

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("HTTP error")
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func (c *Client) tenantURL(endpoint string) string {
	return c.baseURL + "/tenants/" + url.PathEscape(c.tenantID) + endpoint
}

func (c *Client) apiHeaders() http.Header {
	return http.Header{
		"Authorization": []string{"Bearer " + c.apiKey},
		"Content-Type":  []string{"application/json"},
	}
}

func closeBody(logger *zerolog.Logger, body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close response body")
	}
}

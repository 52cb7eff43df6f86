package aurora

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenant = "tenant-1"
	testKey    = "rk_test_123"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, context.Context) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Settings{
		BaseURL:  server.URL + "/",
		TenantID: testTenant,
		APIKey:   testKey,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	return client, logger.WithContext(context.Background())
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Settings{APIKey: testKey})
	assert.Error(t, err)

	_, err = NewClient(Settings{TenantID: testTenant})
	assert.Error(t, err)

	c, err := NewClient(Settings{TenantID: testTenant, APIKey: testKey})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestClient_CheckCredentials(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectedErr error
	}{
		{name: "valid", status: http.StatusOK},
		{name: "unauthorized", status: http.StatusUnauthorized, expectedErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, expectedErr: ErrForbidden},
		{name: "unknown tenant", status: http.StatusNotFound, expectedErr: ErrTenantNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/tenants/"+testTenant, r.URL.Path)
				assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"tenant": {"id": "tenant-1"}}`))
			})

			err := client.CheckCredentials(ctx)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestClient_CheckCredentials_ServerError(t *testing.T) {
	client, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.CheckCredentials(ctx)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestClient_GetDesignSummary(t *testing.T) {
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants/tenant-1/designs/d-1/summary", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"design": {"system_size_stc": 6000, "energy_production": {"annual": 9000}}}`))
	})

	summary, err := client.GetDesignSummary(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 6000.0, summary.Design.SystemSizeSTC)
	assert.Equal(t, 9000.0, summary.Design.EnergyProduction.Annual)
}

func TestClient_Fetch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "empty object",
			status: http.StatusOK,
			body:   `{}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyPayload)
			},
		},
		{
			name:   "invalid json",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to decode")
			},
		},
		{
			name:   "http error",
			status: http.StatusInternalServerError,
			body:   `{"error": "boom"}`,
			checkFn: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Contains(t, statusErr.Body, "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ctx := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := client.GetDesignAssets(ctx, "d-1")
			assert.Nil(t, resp)
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestClient_GetDesignPricing(t *testing.T) {
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants/tenant-1/designs/d%202/pricing", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"pricing": {"system_price": 21000}}`))
	})

	pricing, err := client.GetDesignPricing(ctx, "d 2")
	require.NoError(t, err)
	assert.JSONEq(t, `21000`, string(pricing.Pricing["system_price"]))
}

func TestClient_FetchImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	tests := []struct {
		name        string
		contentType string
		status      int
		wantErr     error
	}{
		{name: "image", contentType: "image/png", status: http.StatusOK},
		{name: "html", contentType: "text/html", status: http.StatusOK, wantErr: ErrNotImage},
		{name: "missing", contentType: "image/png", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write(png)
			})

			data, err := client.FetchImage(ctx, client.baseURL+"/files/layout.png")
			switch {
			case tt.status != http.StatusOK:
				var statusErr *StatusError
				assert.ErrorAs(t, err, &statusErr)
				assert.Nil(t, data)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, data)
			default:
				require.NoError(t, err)
				assert.Equal(t, png, data)
			}
		})
	}
}

func TestClient_FetchImage_UserDataSkipsCredentials(t *testing.T) {
	var gotAuth, gotAccept string
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"image/jpeg"}},
			Body:       http.NoBody,
			Request:    r,
		}, nil
	})

	client, err := NewClient(Settings{
		TenantID:   testTenant,
		APIKey:     testKey,
		HTTPClient: &http.Client{Transport: transport},
	})
	require.NoError(t, err)

	_, err = client.FetchImage(context.Background(), UserDataURLPrefix+"/designs/d-1/layout.jpg?X-Amz-Signature=abc")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "image/*", gotAccept)
}

func TestEndpoints(t *testing.T) {
	assert.Equal(t, "/projects/p-1", ProjectEndpoint("p-1"))
	assert.True(t, strings.HasSuffix(DesignAssetsEndpoint("d-1"), "/assets"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

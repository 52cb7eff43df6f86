package terminal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auroraServer(t *testing.T, tenantStatus int) *httptest.Server {
	t.Helper()
	responses := map[string]string{
		"/tenants/tenant-1/designs/d1/summary": `{"design":{"system_size_stc":6000,"energy_production":{"annual":8457},` +
			`"bill_of_materials":[{"component_type":"modules","name":"REC Alpha 375","quantity":16}],` +
			`"arrays":[{"shading":{"solar_access":{"annual":93.5}}}]}}`,
		"/tenants/tenant-1/designs/d1/pricing": `{"pricing":{"system_price":24567.89}}`,
		"/tenants/tenant-1/designs/d1/assets":  `{"assets":[]}`,
		"/tenants/tenant-1/projects/p1":        `{"project":{"id":"p1","name":"Doe Residence","status":"in_progress"}}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tenants/tenant-1" {
			w.WriteHeader(tenantStatus)
			_, _ = io.WriteString(w, `{"tenant":{"id":"tenant-1"}}`)
			return
		}
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeSettings(t *testing.T, baseURL string) (settingsPath, outputDir string) {
	t.Helper()
	dir := t.TempDir()

	creds := filepath.Join(dir, ".aurorasolarcfg")
	require.NoError(t, os.WriteFile(creds, []byte("[production]\napi_key = rk_test\ntenant_id = tenant-1\n\n[sandbox]\napi_key = rk_sb\ntenant_id = tenant-2\n"), 0o600))

	outputDir = filepath.Join(dir, "reports")
	settingsPath = filepath.Join(dir, "eagleeye.yaml")
	content := fmt.Sprintf("profile: production\ncredentials_file: %q\noutput_dir: %q\nbase_url: %q\nlog_level: warn\n",
		creds, outputDir, baseURL)
	require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))
	return settingsPath, outputDir
}

func TestCLI_Generate(t *testing.T) {
	srv := auroraServer(t, http.StatusOK)
	settingsPath, outputDir := writeSettings(t, srv.URL)

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, Logs: io.Discard})

	err := cli.Run(context.Background(), "generate", "--config", settingsPath, "--design", "d1", "--project", "p1", "--log-file=false")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "PDF report generated successfully")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "aurora_solar_report_design_d1_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".pdf"))
}

func TestCLI_Generate_CredentialFailure(t *testing.T) {
	srv := auroraServer(t, http.StatusUnauthorized)
	settingsPath, outputDir := writeSettings(t, srv.URL)

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, Logs: io.Discard})

	err := cli.Run(context.Background(), "generate", "--config", settingsPath, "--design", "d1", "--log-file=false")
	require.Error(t, err)

	assert.Contains(t, out.String(), "Failed to generate PDF report")
	assert.Contains(t, out.String(), "credential validation failed")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCLI_Generate_RequiresDesign(t *testing.T) {
	cli := NewCLI(Options{Output: io.Discard, Logs: io.Discard})
	assert.Error(t, cli.Run(context.Background(), "generate"))
}

func TestCLI_Dump(t *testing.T) {
	srv := auroraServer(t, http.StatusOK)
	settingsPath, _ := writeSettings(t, srv.URL)

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, Logs: io.Discard})

	err := cli.Run(context.Background(), "dump", "--config", settingsPath, "--design", "d1", "--project", "p1")
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"Design Summary": {`)
	assert.Contains(t, out.String(), `"system_price": 24567.89`)
	assert.Contains(t, out.String(), `"Project Data": {`)
}

func TestCLI_Profiles(t *testing.T) {
	settingsPath, _ := writeSettings(t, "http://unused")

	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, Logs: io.Discard})

	require.NoError(t, cli.Run(context.Background(), "profiles", "--config", settingsPath))
	assert.Contains(t, out.String(), "- production\n- sandbox\n")
}

func TestProfileReporter_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewProfileReporter(&out).Handle("/home/me/.aurorasolarcfg", nil))
	assert.Equal(t, "Profiles in /home/me/.aurorasolarcfg:\n(none)\n", out.String())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TOGGL_API_TOKEN", "TOGGL_WORKSPACE_ID", "TOGGL_BASE_URL",
		"REPORTS_OUTPUT_DIR", "INVOICE_SPREADSHEET_ID",
		"GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_SERVICE_ACCOUNT_JSON",
		"ARCHIVE_MYSQL_DSN",
	} {
		t.Setenv(k, "")
	}
	// Point the default config location at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "42")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.Toggl.APIToken)
	assert.Equal(t, int64(42), cfg.Toggl.WorkspaceID)
	assert.Equal(t, "https://api.track.toggl.com", cfg.Toggl.BaseURL)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, "UTC", cfg.Report.Timezone)
	assert.Zero(t, cfg.Report.LongEntryThreshold)
	assert.False(t, cfg.ArchiveEnabled())
	assert.False(t, cfg.InvoiceEnabled())
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")

	path := writeConfigFile(t, `
[toggl]
workspace_id = 42
base_url = "http://localhost:9090"

[report]
company = "ACME"
handle = "jdoe"
output_dir = "/var/reports"
timezone = "Europe/Berlin"
long_entry_hours = 6.5

[invoice]
spreadsheet_id = "sheet-1"
credentials_file = "/etc/creds.json"

[archive]
mysql_dsn = "user:pass@tcp(db:3306)/reports?parseTime=true"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Toggl.WorkspaceID)
	assert.Equal(t, "http://localhost:9090", cfg.Toggl.BaseURL)
	assert.Equal(t, "ACME", cfg.Report.Company)
	assert.Equal(t, "jdoe", cfg.Report.Handle)
	assert.Equal(t, "/var/reports", cfg.Report.OutputDir)
	assert.Equal(t, "Europe/Berlin", cfg.Report.Timezone)
	assert.Equal(t, 6*time.Hour+30*time.Minute, cfg.Report.LongEntryThreshold)
	assert.Equal(t, "sheet-1", cfg.Invoice.SpreadsheetID)
	assert.Equal(t, "/etc/creds.json", cfg.Invoice.CredentialsFile)
	assert.Equal(t, "user:pass@tcp(db:3306)/reports?parseTime=true", cfg.Archive.DSN)
	assert.True(t, cfg.ArchiveEnabled())
	assert.True(t, cfg.InvoiceEnabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "77")
	t.Setenv("REPORTS_OUTPUT_DIR", "/tmp/out")

	path := writeConfigFile(t, `
[toggl]
workspace_id = 42

[report]
output_dir = "/var/reports"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(77), cfg.Toggl.WorkspaceID)
	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOGGL_API_TOKEN is required")
	assert.Contains(t, err.Error(), "workspace id is required")
}

func TestLoad_BadWorkspaceID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "not-a-number")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOGGL_WORKSPACE_ID must be an integer")
}

func TestLoad_UnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "42")

	path := writeConfigFile(t, `
[report]
timezone = "Mars/Olympus"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown timezone "Mars/Olympus"`)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "42")

	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: reading")
}

func TestLocation(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "token123")
	t.Setenv("TOGGL_WORKSPACE_ID", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Location())
}

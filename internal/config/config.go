package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "toggl-reports"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"

	defaultBaseURL  = "https://api.track.toggl.com"
	defaultOutDir   = "reports"
	defaultTimezone = "UTC"
)

// Config holds the resolved configuration: defaults, then the TOML file,
// then environment overrides. The API token is environment-only.
type Config struct {
	Toggl struct {
		APIToken    string
		WorkspaceID int64
		BaseURL     string // default: https://api.track.toggl.com
	}
	Report struct {
		Company            string
		Handle             string
		OutputDir          string
		Timezone           string // e.g., UTC (default), Europe/Berlin
		LongEntryThreshold time.Duration
	}
	Invoice struct {
		SpreadsheetID   string
		CredentialsFile string
		CredentialsJSON string
	}
	Archive struct {
		DSN string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	}
}

// fileConfig mirrors the TOML layout. Secrets never live in the file.
type fileConfig struct {
	Toggl struct {
		WorkspaceID int64  `toml:"workspace_id"`
		BaseURL     string `toml:"base_url"`
	} `toml:"toggl"`
	Report struct {
		Company        string  `toml:"company"`
		Handle         string  `toml:"handle"`
		OutputDir      string  `toml:"output_dir"`
		Timezone       string  `toml:"timezone"`
		LongEntryHours float64 `toml:"long_entry_hours"`
	} `toml:"report"`
	Invoice struct {
		SpreadsheetID   string `toml:"spreadsheet_id"`
		CredentialsFile string `toml:"credentials_file"`
	} `toml:"invoice"`
	Archive struct {
		DSN string `toml:"mysql_dsn"`
	} `toml:"archive"`
}

// DefaultPath returns the conventional config file location,
// e.g. ~/.config/toggl-reports/config.toml on Linux.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, ConfigFile), nil
}

// Load reads configuration from the TOML file at path plus the environment.
// An empty path means the default location, where a missing file is fine;
// an explicitly given path must exist.
func Load(path string) (Config, error) {
	var cfg Config
	cfg.Toggl.BaseURL = defaultBaseURL
	cfg.Report.OutputDir = defaultOutDir
	cfg.Report.Timezone = defaultTimezone

	if path == "" {
		def, err := DefaultPath()
		if err == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			}
		}
	}
	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
		applyFile(&cfg, fc)
	}

	applyEnv(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.Toggl.WorkspaceID != 0 {
		cfg.Toggl.WorkspaceID = fc.Toggl.WorkspaceID
	}
	if fc.Toggl.BaseURL != "" {
		cfg.Toggl.BaseURL = fc.Toggl.BaseURL
	}
	cfg.Report.Company = fc.Report.Company
	cfg.Report.Handle = fc.Report.Handle
	if fc.Report.OutputDir != "" {
		cfg.Report.OutputDir = fc.Report.OutputDir
	}
	if fc.Report.Timezone != "" {
		cfg.Report.Timezone = fc.Report.Timezone
	}
	if fc.Report.LongEntryHours > 0 {
		cfg.Report.LongEntryThreshold = time.Duration(fc.Report.LongEntryHours * float64(time.Hour))
	}
	cfg.Invoice.SpreadsheetID = fc.Invoice.SpreadsheetID
	cfg.Invoice.CredentialsFile = fc.Invoice.CredentialsFile
	cfg.Archive.DSN = fc.Archive.DSN
}

func applyEnv(cfg *Config) {
	cfg.Toggl.APIToken = os.Getenv("TOGGL_API_TOKEN")
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		if v, err := strconv.ParseInt(ws, 10, 64); err == nil {
			cfg.Toggl.WorkspaceID = v
		} else {
			cfg.Toggl.WorkspaceID = -1
		}
	}
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.Toggl.BaseURL = v
	}
	if v := os.Getenv("REPORTS_OUTPUT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("INVOICE_SPREADSHEET_ID"); v != "" {
		cfg.Invoice.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"); v != "" {
		cfg.Invoice.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		cfg.Invoice.CredentialsJSON = v
	}
	if v := os.Getenv("ARCHIVE_MYSQL_DSN"); v != "" {
		cfg.Archive.DSN = v
	}
}

// validate collects every problem so a bad setup reads as one message.
func validate(cfg Config) error {
	var problems []string
	if cfg.Toggl.APIToken == "" {
		problems = append(problems, "TOGGL_API_TOKEN is required")
	}
	switch {
	case cfg.Toggl.WorkspaceID < 0:
		problems = append(problems, "TOGGL_WORKSPACE_ID must be an integer")
	case cfg.Toggl.WorkspaceID == 0:
		problems = append(problems, "toggl workspace id is required (TOGGL_WORKSPACE_ID or toggl.workspace_id)")
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("unknown timezone %q", cfg.Report.Timezone))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New("config: " + strings.Join(problems, "; "))
}

// Location resolves the configured timezone. Load already checked it parses.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ArchiveEnabled reports whether run archiving is configured.
func (c Config) ArchiveEnabled() bool { return c.Archive.DSN != "" }

// InvoiceEnabled reports whether invoice export is configured.
func (c Config) InvoiceEnabled() bool { return c.Invoice.SpreadsheetID != "" }

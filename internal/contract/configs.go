package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/psicosocial/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 2
	DefaultCity      = "Montería"
	DefaultAddr      = ":8080"
	LatestVersion    = -1 // migrate to the newest embedded migration
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for every command.
// This struct remains the "final, validated" config.
type Config struct {
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	TemplatePath string // Empty means the built-in template
	City         string

	FormType     schema.FormType
	AnswersPath  string
	CampaignID   string
	ReportFormat schema.ReportFormat

	Addr           string
	AllowedOrigins []string

	TargetVersion int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Template       string `mapstructure:"template"`
	City           string `mapstructure:"city"`

	// --- Fields from scoreCmd.Flags() ---
	Form    string `mapstructure:"form"`
	Answers string `mapstructure:"answers"`

	// --- Fields from reportCmd.Flags() and exportCmd.Flags() ---
	Campaign string `mapstructure:"campaign"`
	Format   string `mapstructure:"format"`

	// --- Fields from serveCmd.Flags() ---
	Addr           string `mapstructure:"addr"`
	AllowedOrigins string `mapstructure:"allowed-origins"`

	// --- Fields from storeMigrateCmd.Flags() ---
	TargetVersion int `mapstructure:"target-version"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	steps := []func(*Config, *ConfigRawInput) error{
		validateSimpleInputs,
		validateBackendConfigs,
		validateTemplate,
		validateCommandInputs,
	}
	for _, step := range steps {
		if err := step(cfg, input); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and execution fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, xlsx, parquet", input.Output)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// validateBackendConfigs validates the survey store backend and its connection string.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateTemplate checks that a configured report template is a readable .docx file.
func validateTemplate(cfg *Config, input *ConfigRawInput) error {
	cfg.TemplatePath = ""
	if input.Template == "" {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(input.Template), ".docx") {
		return fmt.Errorf("template must be a .docx file (received %q)", input.Template)
	}
	info, err := os.Stat(input.Template)
	if err != nil {
		return fmt.Errorf("cannot read template: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("template %q is a directory", input.Template)
	}
	cfg.TemplatePath = input.Template
	return nil
}

// validateCommandInputs validates the fields owned by individual subcommands.
// Empty values are accepted here; commands that need them check for presence.
func validateCommandInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.City = strings.TrimSpace(input.City)
	if cfg.City == "" {
		cfg.City = DefaultCity
	}

	cfg.FormType = schema.FormType(strings.ToUpper(strings.TrimSpace(input.Form)))
	if cfg.FormType != "" {
		if _, ok := schema.ValidFormTypes[cfg.FormType]; !ok {
			return fmt.Errorf("invalid form '%s'. must be A or B", input.Form)
		}
	}
	cfg.AnswersPath = input.Answers
	cfg.CampaignID = strings.TrimSpace(input.Campaign)

	cfg.ReportFormat = schema.DocxReport
	if input.Format != "" {
		cfg.ReportFormat = schema.ReportFormat(strings.ToLower(input.Format))
		if _, ok := schema.ValidReportFormats[cfg.ReportFormat]; !ok {
			return fmt.Errorf("invalid report format '%s'. must be docx, data, charts", input.Format)
		}
	}

	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.AllowedOrigins = nil
	for o := range strings.SplitSeq(input.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if input.TargetVersion < LatestVersion {
		return fmt.Errorf("target-version must be -1 (latest), 0 (rollback) or a positive version (received %d)", input.TargetVersion)
	}
	cfg.TargetVersion = input.TargetVersion
	return nil
}

// ProcessProfilingConfig processes profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

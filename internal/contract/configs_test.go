package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Workers:       4,
		Precision:     1,
		Output:        "text",
		Color:         "yes",
		StoreBackend:  "sqlite",
		TargetVersion: LatestVersion,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tmpl := filepath.Join(t.TempDir(), "plantilla.docx")
	require.NoError(t, os.WriteFile(tmpl, []byte("PK"), 0o644))

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
		check       func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
				assert.Equal(t, schema.DocxReport, cfg.ReportFormat)
				assert.Equal(t, DefaultCity, cfg.City)
				assert.Equal(t, DefaultAddr, cfg.Addr)
				assert.True(t, cfg.UseColors)
				assert.Empty(t, cfg.TemplatePath)
			},
		},
		{
			name:   "case insensitive enums",
			mutate: func(in *ConfigRawInput) { in.Output = "XLSX"; in.StoreBackend = "None"; in.Form = "b"; in.Format = "DATA" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.XLSXOut, cfg.Output)
				assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
				assert.Equal(t, schema.FormB, cfg.FormType)
				assert.Equal(t, schema.DataReport, cfg.ReportFormat)
			},
		},
		{
			name:   "charts report format",
			mutate: func(in *ConfigRawInput) { in.Format = "Charts" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ChartsReport, cfg.ReportFormat)
			},
		},
		{
			name:   "allowed origins are split and trimmed",
			mutate: func(in *ConfigRawInput) { in.AllowedOrigins = " http://a.co, ,http://b.co " },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"http://a.co", "http://b.co"}, cfg.AllowedOrigins)
			},
		},
		{
			name:   "template path is kept",
			mutate: func(in *ConfigRawInput) { in.Template = tmpl },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, tmpl, cfg.TemplatePath)
			},
		},
		{
			name:   "custom city",
			mutate: func(in *ConfigRawInput) { in.City = "  Bogotá " },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Bogotá", cfg.City)
			},
		},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: "workers must be greater than 0"},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be 1 or 2"},
		{name: "unknown output", mutate: func(in *ConfigRawInput) { in.Output = "pdf" }, expectError: "invalid output format"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color value"},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: "width cannot be negative"},
		{name: "unknown backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mongo" }, expectError: "invalid store backend"},
		{name: "mysql without connection", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: "store-db-connect is required"},
		{name: "template wrong extension", mutate: func(in *ConfigRawInput) { in.Template = "plantilla.pdf" }, expectError: "must be a .docx file"},
		{name: "template missing", mutate: func(in *ConfigRawInput) { in.Template = filepath.Join(t.TempDir(), "nope.docx") }, expectError: "cannot read template"},
		{name: "bad form", mutate: func(in *ConfigRawInput) { in.Form = "C" }, expectError: "invalid form"},
		{name: "bad report format", mutate: func(in *ConfigRawInput) { in.Format = "pdf" }, expectError: "invalid report format"},
		{name: "bad target version", mutate: func(in *ConfigRawInput) { in.TargetVersion = -2 }, expectError: "target-version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite ignores connection", schema.SQLiteBackend, "", false},
		{"none ignores connection", schema.NoneBackend, "anything", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/psicosocial", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/psicosocial", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 user=postgres dbname=psicosocial", false},
		{"postgres missing host", schema.PostgreSQLBackend, "port=5432 dbname=psicosocial", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}

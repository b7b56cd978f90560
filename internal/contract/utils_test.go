package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		level    schema.RiskLevel
		expected string
	}{
		{schema.SinRiesgo, "Sin riesgo"},
		{schema.RiesgoBajo, "Riesgo bajo"},
		{schema.RiesgoMuyAlto, "Riesgo muy alto"},
		{schema.NoAplica, "No aplica"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.level))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	for _, level := range schema.RiskLevels {
		label := GetColorLabel(level)
		assert.Contains(t, label, GetPlainLabel(level))
		assert.True(t, strings.HasPrefix(label, "\x1b["), "expected escape sequence for %s", level)
	}
	assert.Equal(t, "No aplica", GetColorLabel(schema.NoAplica))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()
	assert.Equal(t, DBFileName, filepath.Base(path))
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		width    int
		expected string
	}{
		{"fits", "Liderazgo", 20, "Liderazgo"},
		{"truncated", "Características del liderazgo", 12, "Caracterí..."},
		{"multibyte", "Estrés laboral", 8, "Estré..."},
		{"tiny width untouched", "Liderazgo", 3, "Liderazgo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"Sí", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

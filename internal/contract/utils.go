package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/psicosocial/schema"
)

// DBFileName is the default SQLite survey store file.
const DBFileName = ".psicosocial.db"

// Color variables for console output, from the lowest risk level to the highest.
var (
	SinRiesgoColor = color.New(color.FgGreen)
	BajoColor      = color.New(color.FgCyan)
	MedioColor     = color.New(color.FgYellow)
	AltoColor      = color.New(color.FgMagenta, color.Bold)
	MuyAltoColor   = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns the short label of a risk level, used by CSV,
// JSON and table printing.
func GetPlainLabel(level schema.RiskLevel) string {
	return level.ShortLabel()
}

// GetColorLabel returns a colored short label for console output (table).
func GetColorLabel(level schema.RiskLevel) string {
	text := GetPlainLabel(level)

	switch level {
	case schema.RiesgoMuyAlto:
		return MuyAltoColor.Sprint(text)
	case schema.RiesgoAlto:
		return AltoColor.Sprint(text)
	case schema.RiesgoMedio:
		return MedioColor.Sprint(text)
	case schema.RiesgoBajo:
		return BajoColor.Sprint(text)
	case schema.SinRiesgo:
		return SinRiesgoColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for survey storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DBFileName
	}
	return filepath.Join(homeDir, DBFileName)
}

// TruncateLabel shortens a label to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis leaves room for content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1", "si", "sí":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

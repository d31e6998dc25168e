package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/babscore/schema"
)

// AutoOutputFile is the --output-file value that selects the default file name.
const AutoOutputFile = "auto"

// DefaultOutputBaseName is the default file name, without extension, for exported tables.
const DefaultOutputBaseName = "analisis_program"

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor represents a strong result.
	GoodColor      = color.New(color.FgCyan)              // GoodColor represents an on-track result.
	FairColor      = color.New(color.FgYellow)            // FairColor represents standard caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // PoorColor represents standard danger.
)

// GetColorLabel returns a colored performance band for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(ikk float64) string {
	text := schema.GetPlainLabel(ikk)

	switch text {
	case schema.ExcellentValue:
		return ExcellentColor.Sprint(text)
	case schema.GoodValue:
		return GoodColor.Sprint(text)
	case schema.FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetResultColorLabel colors the band of an optional IKK score. An undefined
// score is printed without color.
func GetResultColorLabel(ikk *float64) string {
	if ikk == nil {
		return schema.UndefinedValue
	}
	return GetColorLabel(*ikk)
}

// ResolveOutputFile expands the "auto" output file into the default file name
// with the extension of the output mode. Text output has no default file.
func ResolveOutputFile(filePath string, output schema.OutputMode) string {
	if filePath != AutoOutputFile {
		return filePath
	}
	if output == schema.TextOut {
		return ""
	}
	return DefaultOutputBaseName + "." + string(output)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// TruncateName truncates a chapter name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is space for both the "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

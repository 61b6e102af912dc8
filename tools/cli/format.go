package main

import (
	"fmt"
	"slices"
	"strings"

	f "github.com/multimediallc/dta-reader/pkg/functional"
)

type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatOneLine OutputFormat = "one-line"
	FormatJSON    OutputFormat = "json"
)

var allowedFormats = []string{string(FormatDefault), string(FormatOneLine), string(FormatJSON)}

func validateFormat(format string) (OutputFormat, error) {
	if !slices.Contains(allowedFormats, format) {
		return "", fmt.Errorf("invalid format %s. Must be one of %s", format, strings.Join(allowedFormats, ", "))
	}
	return OutputFormat(format), nil
}

// joinFor joins output lines the way format lays them out. JSON output is
// encoded by the callers.
func joinFor(format OutputFormat, lines []string) string {
	if format == FormatOneLine {
		return strings.Join(f.Map(lines, func(line string) string {
			return strings.ReplaceAll(line, "\t", " ")
		}), ", ")
	}
	return strings.Join(lines, "\n")
}

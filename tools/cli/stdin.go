package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// isStdinPiped checks if stdin is being piped to the program
func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

func scanStdin() ([]string, error) {
	return scanIDs(os.Stdin)
}

// scanIDs reads spectrum identifiers separated by whitespace or commas
func scanIDs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var ids []string
	for scanner.Scan() {
		fields := strings.FieldsFunc(scanner.Text(), func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\r'
		})
		ids = append(ids, fields...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from stdin: %w", err)
	}
	return ids, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	tt := []struct {
		name          string
		configContent string
		expected      *Config
		expectedErr   bool
	}{
		{
			name:     "default config when no file exists",
			expected: Default(),
		},
		{
			name: "valid config with all fields",
			configContent: `
pattern = "*.pkl"
[output]
format = "json"
digest = true
header = false
`,
			expected: &Config{
				Pattern: "*.pkl",
				Output:  Output{Format: "json", Digest: true, Header: false},
			},
		},
		{
			name: "partial config with defaults",
			configContent: `
[output]
digest = true
`,
			expected: &Config{
				Pattern: "*.dta",
				Output:  Output{Format: "default", Digest: true, Header: true},
			},
		},
		{
			name: "empty values fall back to defaults",
			configContent: `
pattern = ""
[output]
format = ""
`,
			expected: Default(),
		},
		{
			name: "unknown keys are ignored",
			configContent: `
max_reviews = 2
pattern = "scan.*.dta"
`,
			expected: &Config{
				Pattern: "scan.*.dta",
				Output:  Output{Format: "default", Digest: false, Header: true},
			},
		},
		{
			name: "invalid toml",
			configContent: `
pattern = invalid
`,
			expected:    Default(),
			expectedErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			testDir := t.TempDir()
			if tc.configContent != "" {
				err := os.WriteFile(filepath.Join(testDir, FileName), []byte(tc.configContent), 0644)
				if err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}
			}

			got, err := ReadConfig(testDir)
			if tc.expectedErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tc.expectedErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("got nil config")
			}
			if got.Pattern != tc.expected.Pattern {
				t.Errorf("Pattern: expected %q, got %q", tc.expected.Pattern, got.Pattern)
			}
			if got.Output != tc.expected.Output {
				t.Errorf("Output: expected %+v, got %+v", tc.expected.Output, got.Output)
			}
		})
	}
}

func TestReadConfigDirectoryAsFile(t *testing.T) {
	testDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(testDir, FileName), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	got, err := ReadConfig(testDir)
	if err == nil {
		t.Error("expected error when dta.toml is a directory")
	}
	if got == nil || got.Pattern != "*.dta" {
		t.Errorf("expected default config alongside the error, got %+v", got)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/multimediallc/dta-reader/pkg/dta"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "dta.toml"

type Config struct {
	Pattern string `toml:"pattern"`
	Output  Output `toml:"output"`
}

type Output struct {
	Format string `toml:"format"`
	Digest bool   `toml:"digest"`
	Header bool   `toml:"header"`
}

func Default() *Config {
	return &Config{
		Pattern: dta.DefaultPattern,
		Output:  Output{Format: "default", Digest: false, Header: true},
	}
}

// ReadConfig reads dta.toml from dir. A missing file yields the defaults; an
// unreadable or malformed file yields the defaults and the error.
func ReadConfig(dir string) (*Config, error) {
	defaultConfig := Default()

	fileName := filepath.Join(dir, FileName)
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	file, err := os.ReadFile(fileName)
	if err != nil {
		return defaultConfig, err
	}
	config := Default()
	err = toml.Unmarshal(file, config)
	if err != nil {
		return defaultConfig, err
	}
	if config.Pattern == "" {
		config.Pattern = defaultConfig.Pattern
	}
	if config.Output.Format == "" {
		config.Output.Format = defaultConfig.Output.Format
	}
	return config, nil
}

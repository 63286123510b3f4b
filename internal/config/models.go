package config

// Config represents the user configuration file.
type Config struct {
	Version   int    `yaml:"version"`
	OutputDir string `yaml:"output_dir,omitempty"` // Where artifacts are written; empty means next to the image
	LogLevel  string `yaml:"log_level,omitempty"`  // debug, info, warn or error; empty means silent
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
	}
}

// Merge applies non-empty overrides on top of c and returns the result.
// Command-line flags are passed as overrides.
func (c *Config) Merge(outputDir, logLevel string) *Config {
	merged := *c
	if outputDir != "" {
		merged.OutputDir = outputDir
	}
	if logLevel != "" {
		merged.LogLevel = logLevel
	}
	return &merged
}

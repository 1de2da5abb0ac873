package config

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"NPA_LOG_LEVEL"  yaml:"level"`
	Format string `env:"NPA_LOG_FORMAT" yaml:"format"`
}

// SetDefaults applies default values for LoggingConfig.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	if c.Level != "" {
		if err := ValidateOneOf("logging.level", c.Level, "debug", "info", "warn", "warning", "error", "fatal"); err != nil {
			return err
		}
	}
	if c.Format != "" {
		if err := ValidateOneOf("logging.format", c.Format, "json", "console"); err != nil {
			return err
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
//
// The analysis API key is deliberately not required here: the catalog, query,
// and CSV surfaces work without one, and the analysis client reports a
// missing credential as its own typed failure at call time.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateImaging(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case "sqlite", "file":
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", "sqlite", "file", c.Storage.Backend)
	}
	if c.Storage.MaxBlobKiB < 0 {
		return errors.New("storage.max_blob_kib must not be negative")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.TimeoutSeconds < 0 {
		return errors.New("analysis.timeout_seconds must not be negative")
	}
	if c.Analysis.BaseURL == "" {
		return errors.New("analysis.base_url must be set")
	}
	if c.Analysis.Model == "" {
		return errors.New("analysis.model must be set")
	}
	return nil
}

func (c *Config) validateImaging() error {
	if c.Imaging.MaxDimension < 1 {
		return errors.New("imaging.max_dimension must be positive")
	}
	if c.Imaging.JPEGQuality < 1 || c.Imaging.JPEGQuality > 100 {
		return errors.New("imaging.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

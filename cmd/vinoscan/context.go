package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vinoscan/internal/alerts"
	"vinoscan/internal/analysis"
	"vinoscan/internal/catalog"
	"vinoscan/internal/config"
	"vinoscan/internal/imaging"
	"vinoscan/internal/logging"
	"vinoscan/internal/staging"
	"vinoscan/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withCatalog opens the configured store and the catalog on top of it, runs
// fn, and closes the store. A corrupt blob is reported as a warning and the
// command proceeds with an empty cellar.
func (c *commandContext) withCatalog(cmd *cobra.Command, fn func(context.Context, *catalog.Catalog) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	cat, err := catalog.Open(ctx, store, logger)
	if err != nil {
		var loadErr *catalog.LoadError
		if !errors.As(err, &loadErr) {
			return renderError(err)
		}
		printAlert(cmd, alerts.FromError(err))
	}
	return fn(ctx, cat)
}

func (c *commandContext) imagingOptions() imaging.Options {
	cfg, err := c.ensureConfig()
	if err != nil {
		return imaging.DefaultOptions()
	}
	return imaging.Options{
		MaxDimension: cfg.Imaging.MaxDimension,
		JPEGQuality:  cfg.Imaging.JPEGQuality,
	}
}

func (c *commandContext) newSession() (*staging.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := analysis.NewClient(cfg.Analysis)
	return staging.NewSession(client, c.imagingOptions(), logger), nil
}

// renderError converts a typed error into the stable "Title: message" form
// the CLI reports.
func renderError(err error) error {
	if err == nil {
		return nil
	}
	alert := alerts.FromError(err)
	return fmt.Errorf("%s: %s", alert.Title, alert.Message)
}

func printAlert(cmd *cobra.Command, alert alerts.Alert) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", alert.Title, alert.Message)
}

func readImageFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return raw, nil
}

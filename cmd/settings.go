package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-lightmap-baker/pkg/tracer"
)

// LoadSettings reads a YAML file over the default settings. An empty path returns the defaults.
func LoadSettings(path string) (tracer.Settings, error) {
	settings := tracer.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return settings, nil
}

// settingsFromContext overlays command line flags on the config file
func settingsFromContext(ctx *cli.Context) (tracer.Settings, error) {
	settings, err := LoadSettings(ctx.String("config"))
	if err != nil {
		return settings, err
	}

	if ctx.IsSet("tasks") {
		settings.NumTasks = ctx.Int("tasks")
	}
	if ctx.IsSet("seed") {
		settings.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("bounces") {
		settings.NumBounces = ctx.Int("bounces")
	}
	if ctx.IsSet("samples") {
		settings.NumIndirectChartSamples = ctx.Int("samples")
	}

	return settings, settings.Validate()
}

// ShowSettings prints the effective settings as YAML.
func ShowSettings(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}

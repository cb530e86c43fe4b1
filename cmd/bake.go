package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-lightmap-baker/pkg/baker"
	"github.com/df07/go-lightmap-baker/pkg/loaders"
	"github.com/df07/go-lightmap-baker/pkg/scene"
)

// Bake bakes a built-in scene and writes its lightmaps.
func Bake(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}

	opts := scene.DefaultRoomOptions()
	if ctx.IsSet("resolution") {
		opts.TexelsPerUnit = ctx.Int("resolution")
	}
	if ctx.IsSet("probes") {
		opts.ProbesPerAxis = ctx.Int("probes")
	}
	if path := ctx.String("texture"); path != "" {
		texture, err := loaders.LoadImage(path)
		if err != nil {
			return err
		}
		opts.PanelTexture = texture
	}

	s, err := scene.NewSceneByID(ctx.String("scene"), opts)
	if err != nil {
		return err
	}

	bakeCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := baker.New(settings, logger).Bake(bakeCtx, baker.InputFromScene(s))
	if err != nil {
		return err
	}

	files, err := WriteLightmaps(ctx.String("out"), result)
	if err != nil {
		return err
	}
	for _, file := range files {
		logger.Infof("wrote %s", file)
	}

	displayBakeStats(result.Stats)
	return nil
}

func displayBakeStats(stats baker.Stats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Time", "% of bake"})
	for _, stage := range stats.Stages {
		percent := 0.0
		if stats.Total > 0 {
			percent = 100 * float64(stage.Duration) / float64(stats.Total)
		}
		table.Append([]string{
			stage.Name,
			stage.Duration.String(),
			fmt.Sprintf("%02.1f %%", percent),
		})
	}
	table.SetFooter([]string{"TOTAL", stats.Total.String(), ""})
	table.Render()

	logger.Noticef("bake %s: %d charts, %d occupied texels, %d probes\n%s",
		stats.RunID, stats.NumCharts, stats.OccupiedTexels, stats.NumProbes, buf.String())
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-lightmap-baker/cmd"
)

// settingsFlags are shared by every command that needs tracing settings
var settingsFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML file overriding the default settings",
	},
	cli.IntFlag{
		Name:  "tasks",
		Usage: "number of parallel tasks (0 = one per CPU)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "base random seed",
	},
	cli.IntFlag{
		Name:  "bounces",
		Usage: "number of indirect bounces",
	},
	cli.IntFlag{
		Name:  "samples",
		Usage: "indirect samples per lightmap texel",
	},
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lightmap-baker"
	app.Usage = "bake lightmaps and light probes with Monte Carlo ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "bake",
			Usage: "bake a built-in scene",
			Description: `
Bake direct, emissive and indirect light into the lightmap charts of a scene and
into its light probes, then write one PNG per chart.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "room",
					Usage: "built-in scene id (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "output",
					Usage: "directory for the lightmap PNGs",
				},
				cli.StringFlag{
					Name:  "texture, t",
					Usage: "image modulating the transparent panel",
				},
				cli.IntFlag{
					Name:  "resolution, r",
					Usage: "lightmap texels per scene unit",
				},
				cli.IntFlag{
					Name:  "probes",
					Usage: "light probes per axis (0 disables probes)",
				},
			}, settingsFlags...),
			Action: cmd.Bake,
		},
		{
			Name:   "settings",
			Usage:  "print the effective settings as YAML",
			Flags:  settingsFlags,
			Action: cmd.ShowSettings,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

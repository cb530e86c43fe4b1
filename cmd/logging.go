package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-lightmap-baker/pkg/log"
)

var logger = log.New("lightmap-baker")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

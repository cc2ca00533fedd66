package cmd

import (
	"github.com/achilleasa/photon/log"
	"github.com/urfave/cli"
)

var logger = log.New("photon")

// Apply the configured log level; the -v and -vv flags take precedence.
func setupLogging(ctx *cli.Context, level string) {
	if parsed, err := log.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

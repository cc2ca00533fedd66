package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/photon/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	workloadFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "traversal",
			Usage: "BVH traversal order (nearest or storage)",
		},
	}

	app := cli.NewApp()
	app.Name = "photon"
	app.Usage = "inspect and benchmark the ray/geometry intersection core"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load workload definition from a gcfg file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "stats",
			Usage: "display memory and BVH statistics for the workload",
			Description: `
Generate the configured meshes, build their BVH trees and display a table with
the memory used by vertices, triangle bundles and BVH nodes.`,
			Action: cmd.ShowStats,
			Flags:  workloadFlags,
		},
		{
			Name:  "cast",
			Usage: "cast primary rays against the workload and report throughput",
			Description: `
Generate one camera ray per pixel and intersect the rays with the scene using a
pool of tracers. Batches are split between tracers by the configured block
scheduler.`,
			Action: cmd.CastRays,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of tracers",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Usage: "block scheduler (naive or perfect)",
				},
				cli.IntFlag{
					Name:  "passes, p",
					Value: 1,
					Usage: "number of batches to cast",
				},
			}, workloadFlags...),
		},
		{
			Name:  "verify",
			Usage: "compare BVH intersections with a brute force scan",
			Description: `
Cast random rays at every configured mesh and check that the BVH reports the
same nearest hit as a linear scan over all triangle bundles.`,
			Action: cmd.Verify,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "rays, n",
					Usage: "random rays per mesh",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random number generator seed",
				},
			}, workloadFlags...),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

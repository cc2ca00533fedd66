package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/achilleasa/photon/scene"
	"github.com/achilleasa/photon/tracer"
	"github.com/urfave/cli"
)

// Cast one primary ray per pixel against the configured workload using a pool
// of tracers and display throughput statistics.
func CastRays(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	scheduler, err := tracer.NewScheduler(cfg.Tracer.Scheduler)
	if err != nil {
		return err
	}

	tracers, err := tracer.NewCPUTracers(sc, cfg.Tracer.Workers)
	if err != nil {
		return err
	}

	caster, err := tracer.NewCaster(tracers, scheduler, cfg.Tracer.BlockSize)
	if err != nil {
		return err
	}
	defer caster.Close()

	if info, err := hostInfo(); err != nil {
		logger.Warningf("unable to query host information: %v", err)
	} else {
		logger.Noticef("host: %s", info)
	}
	logger.Noticef(
		"casting %dx%d rays on %d tracers (%s scheduler, %s traversal)",
		cfg.Camera.Width, cfg.Camera.Height, cfg.Tracer.Workers, cfg.Tracer.Scheduler, cfg.Tracer.Traversal,
	)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jx, jy := scene.NewHalton(2), scene.NewHalton(3)
	passes := ctx.Int("passes")
	if passes < 1 {
		passes = 1
	}

	for pass := 0; pass < passes; pass++ {
		rays := sc.Camera.GenerateRays(cfg.Camera.Width, cfg.Camera.Height, jx, jy)
		if _, err = caster.Cast(runCtx, rays); err != nil {
			return err
		}

		stats := caster.Stats()
		logger.Noticef(
			"pass %d: %d rays, hit rate %3.1f%%, %.0f rays/s",
			pass, stats.Rays, stats.HitRate()*100, stats.RaysPerSecond(),
		)
		logger.Infof("cast statistics\n%s", stats)
	}

	return nil
}

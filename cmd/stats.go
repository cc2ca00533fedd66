package cmd

import (
	"github.com/achilleasa/photon/scene"
	"github.com/urfave/cli"
)

// Display memory and BVH statistics for the configured workload.
func ShowStats(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	for _, mesh := range sc.Meshes() {
		logger.Infof("mesh %q BVH:\n%s", mesh.Name(), scene.TreeStats(mesh.Name(), mesh.Tree().Stats()))
	}
	logger.Infof("camera:\n%s", sc.Camera.Frustrum)

	return nil
}

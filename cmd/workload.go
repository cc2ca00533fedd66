package cmd

import (
	"fmt"
	"time"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/config"
	"github.com/achilleasa/photon/scene"
	"github.com/urfave/cli"
)

// Load the workload configuration, apply command line overrides and set up
// logging.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if fname := ctx.GlobalString("config"); fname != "" {
		cfg, err = config.Load(fname)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if ctx.IsSet("width") {
		cfg.Camera.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Camera.Height = ctx.Int("height")
	}
	if ctx.IsSet("workers") {
		cfg.Tracer.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("scheduler") {
		cfg.Tracer.Scheduler = ctx.String("scheduler")
	}
	if ctx.IsSet("traversal") {
		cfg.Tracer.Traversal = ctx.String("traversal")
	}
	if ctx.IsSet("rays") {
		cfg.Verify.Rays = ctx.Int("rays")
	}
	if ctx.IsSet("seed") {
		cfg.Verify.Seed = ctx.Int64("seed")
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	setupLogging(ctx, cfg.Log.Level)
	return cfg, nil
}

// Generate the configured meshes.
func buildMeshes(cfg *config.Config) ([]*scene.Mesh, error) {
	traversal, err := bvh.ParseTraversal(cfg.Tracer.Traversal)
	if err != nil {
		return nil, err
	}

	meshes := make([]*scene.Mesh, 0, len(cfg.Mesh))
	for _, name := range cfg.MeshNames() {
		mc := cfg.Mesh[name]

		var prim *scene.Primitive
		switch mc.Shape {
		case config.ShapePlane:
			prim = scene.NewPlane(mc.Center.Vec3(), mc.Size[0], mc.Segments, mc.Material)
		case config.ShapeSphere:
			prim = scene.NewSphere(mc.Center.Vec3(), mc.Size[0], mc.Segments, mc.Material)
		case config.ShapeBox:
			prim = scene.NewBox(mc.Center.Vec3(), mc.Size.Vec3(), mc.Material)
		case config.ShapeSoup:
			prim = scene.NewTriangleSoup(mc.Seed, mc.Count, mc.Center.Vec3(), mc.Size[0], mc.Material)
		default:
			return nil, fmt.Errorf("mesh %q: unsupported shape %q", name, mc.Shape)
		}

		mesh, err := prim.Mesh(name, bvh.WithTraversal(traversal))
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func buildCamera(cfg *config.Config) *scene.Camera {
	cam := scene.NewCamera(cfg.Camera.FOV)
	cam.Position = cfg.Camera.Eye.Vec3()
	cam.LookAt = cfg.Camera.Look.Vec3()
	cam.Up = cfg.Camera.Up.Vec3().Normalize()
	cam.Pitch = cfg.Camera.Pitch
	cam.Yaw = cfg.Camera.Yaw
	cam.SetupProjection(float32(cfg.Camera.Width) / float32(cfg.Camera.Height))
	return cam
}

// Build the scene described by the configuration.
func buildScene(cfg *config.Config) (*scene.Scene, error) {
	start := time.Now()

	meshes, err := buildMeshes(cfg)
	if err != nil {
		return nil, err
	}

	traversal, err := bvh.ParseTraversal(cfg.Tracer.Traversal)
	if err != nil {
		return nil, err
	}

	sc, err := scene.NewScene(buildCamera(cfg), meshes, bvh.WithTraversal(traversal))
	if err != nil {
		return nil, err
	}

	logger.Noticef("built scene with %d meshes in %d ms", len(meshes), time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

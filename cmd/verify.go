package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/scene"
	"github.com/achilleasa/photon/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var ErrVerifyFailed = errors.New("verify: BVH and brute force results differ")

type verifyResult struct {
	mesh       string
	rays       int
	hits       int
	mismatches int
}

// Compare BVH intersections with a brute force scan for every configured mesh.
func Verify(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	meshes, err := buildMeshes(cfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Verify.Seed))
	results := make([]verifyResult, 0, len(meshes))
	mismatches := 0
	for _, mesh := range meshes {
		res := verifyMesh(mesh, rng, cfg.Verify.Rays)
		mismatches += res.mismatches
		results = append(results, res)
	}

	displayVerifyResults(results)

	if mismatches > 0 {
		return fmt.Errorf("%w: %d mismatches", ErrVerifyFailed, mismatches)
	}
	return nil
}

// Cast random rays from a shell around the mesh towards points inside its
// bounds and compare both intersection methods.
func verifyMesh(mesh *scene.Mesh, rng *rand.Rand, count int) verifyResult {
	res := verifyResult{mesh: mesh.Name(), rays: count}
	bounds := mesh.Bounds()
	if bounds.IsEmpty() {
		return res
	}

	ref := scene.NewBruteForce(mesh)
	center := bounds.Center()
	extent := bounds.Extent()
	radius := extent.Len() + 1

	for i := 0; i < count; i++ {
		origin := center.Add(randDir(rng).Mul(radius * (1 + rng.Float32())))
		target := types.XYZ(
			bounds.Lower[0]+rng.Float32()*extent[0],
			bounds.Lower[1]+rng.Float32()*extent[1],
			bounds.Lower[2]+rng.Float32()*extent[2],
		)
		ray := geometry.NewRay(origin, target.Sub(origin))

		exp := ref.Intersect(ray)
		got := mesh.Intersect(ray)
		if got.Hit() {
			res.hits++
		}
		if exp.Hit() != got.Hit() || exp.Distance != got.Distance {
			res.mismatches++
			logger.Warningf("mesh %q: ray %v: expected %v; got %v", mesh.Name(), ray, exp, got)
		}
	}
	return res
}

func randDir(rng *rand.Rand) types.Vec3 {
	for {
		v := types.XYZ(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1)
		if l := v.Len(); l > 1e-3 && l <= 1 {
			return v.Normalize()
		}
	}
}

func displayVerifyResults(results []verifyResult) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mesh", "Rays", "Hits", "Mismatches"})

	var total verifyResult
	for _, res := range results {
		table.Append([]string{
			res.mesh,
			fmt.Sprintf("%d", res.rays),
			fmt.Sprintf("%d", res.hits),
			fmt.Sprintf("%d", res.mismatches),
		})
		total.rays += res.rays
		total.hits += res.hits
		total.mismatches += res.mismatches
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", total.rays),
		fmt.Sprintf("%d", total.hits),
		fmt.Sprintf("%d", total.mismatches),
	})

	table.Render()
	logger.Noticef("verification results\n%s", buf.String())
}

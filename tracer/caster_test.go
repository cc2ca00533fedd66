package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/achilleasa/photon/geometry"
	"github.com/achilleasa/photon/scene"
	"github.com/achilleasa/photon/types"
	"github.com/stretchr/testify/require"
)

func makeTestScene(t *testing.T) (*scene.Scene, []geometry.Ray) {
	sphere, err := scene.NewSphere(types.XYZ(0, 0, -5), 1.5, 16, 1).Mesh("sphere")
	require.NoError(t, err)
	floor, err := scene.NewPlane(types.XYZ(0, -2, -5), 10, 4, 2).Mesh("floor")
	require.NoError(t, err)

	cam := scene.NewCamera(60)
	cam.SetupProjection(1)
	sc, err := scene.NewScene(cam, []*scene.Mesh{sphere, floor})
	require.NoError(t, err)

	return sc, cam.GenerateRays(32, 32, scene.NewHalton(2), scene.NewHalton(3))
}

func TestCastMatchesSerial(t *testing.T) {
	sc, rays := makeTestScene(t)

	for _, sch := range []BlockScheduler{NaiveScheduler(), PerfectScheduler()} {
		tracers, err := NewCPUTracers(sc, 3)
		require.NoError(t, err)
		caster, err := NewCaster(tracers, sch, 64)
		require.NoError(t, err)

		// Run twice so the perfect scheduler uses the collected stats.
		for pass := 0; pass < 2; pass++ {
			hits, err := caster.Cast(context.Background(), rays)
			require.NoError(t, err)
			if len(hits) != len(rays) {
				t.Fatalf("expected %d results; got %d", len(rays), len(hits))
			}

			var expHits uint32
			for index, ray := range rays {
				exp := sc.Intersect(ray)
				if exp.Hit() {
					expHits++
				}
				if hits[index] != exp {
					t.Fatalf("[pass %d] ray %d: expected %v; got %v", pass, index, exp, hits[index])
				}
			}

			stats := caster.Stats()
			if stats.Rays != uint32(len(rays)) || stats.Hits != expHits {
				t.Fatalf("expected %d rays with %d hits; got %d with %d", len(rays), expHits, stats.Rays, stats.Hits)
			}
			if expHits == 0 || expHits == uint32(len(rays)) {
				t.Fatalf("expected a mix of hits and misses; got %d hits", expHits)
			}

			var blockSum uint32
			for _, ts := range stats.Tracers {
				blockSum += ts.BlockH
			}
			if blockSum != uint32(len(rays)) {
				t.Fatalf("expected tracer blocks to add up to %d; got %d", len(rays), blockSum)
			}
		}

		if out := caster.Stats().String(); len(out) == 0 {
			t.Fatal("expected non-empty stats table")
		}
		caster.Close()
	}
}

func TestCastInterrupted(t *testing.T) {
	sc, rays := makeTestScene(t)
	tracers, err := NewCPUTracers(sc, 2)
	require.NoError(t, err)
	caster, err := NewCaster(tracers, nil, 16)
	require.NoError(t, err)
	defer caster.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := caster.Cast(ctx, rays); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted; got %v", err)
	}
}

func TestCastEmptyBatch(t *testing.T) {
	sc, _ := makeTestScene(t)
	tracers, err := NewCPUTracers(sc, 1)
	require.NoError(t, err)
	caster, err := NewCaster(tracers, nil, 0)
	require.NoError(t, err)
	defer caster.Close()

	hits, err := caster.Cast(context.Background(), nil)
	require.NoError(t, err)
	if len(hits) != 0 {
		t.Fatalf("expected no results; got %d", len(hits))
	}
}

func TestCasterErrors(t *testing.T) {
	if _, err := NewCaster(nil, nil, 0); !errors.Is(err, ErrNoTracers) {
		t.Fatalf("expected ErrNoTracers; got %v", err)
	}
	if _, err := NewCPUTracer("cpu", nil); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget; got %v", err)
	}
	if _, err := NewCPUTracers(nil, 0); !errors.Is(err, ErrNoTracers) {
		t.Fatalf("expected ErrNoTracers; got %v", err)
	}
}

func TestClosedTracer(t *testing.T) {
	sc, rays := makeTestScene(t)
	tracers, err := NewCPUTracers(sc, 1)
	require.NoError(t, err)
	caster, err := NewCaster(tracers, nil, 0)
	require.NoError(t, err)

	caster.Close()
	// Closing twice is a no-op.
	caster.Close()

	if _, err := caster.Cast(context.Background(), rays); !errors.Is(err, ErrTracerClosed) {
		t.Fatalf("expected ErrTracerClosed; got %v", err)
	}
}

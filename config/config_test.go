package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "notice", cfg.Log.Level)
	assert.Equal(t, []string{"floor", "sphere"}, cfg.MeshNames())
	assert.Equal(t, "sphere", cfg.Mesh["sphere"].Name)
	assert.True(t, cfg.Tracer.Workers > 0)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[log]
level = debug

[camera]
width = 64
height = 48
fov = 45
eye = 0 1 5
look = 0 1 0

[tracer]
workers = 3
blockSize = 256
scheduler = Naive
traversal = storage

[mesh "ball"]
shape = sphere
center = 1, 2, 3
size = 2
segments = 12
material = 4

[mesh "noise"]
shape = soup
size = 5
count = 100
seed = 42
material = 1
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 64, cfg.Camera.Width)
	assert.Equal(t, 48, cfg.Camera.Height)
	assert.Equal(t, float32(45), cfg.Camera.FOV)
	assert.Equal(t, Vector{0, 1, 5}, cfg.Camera.Eye)
	assert.Equal(t, Vector{0, 1, 0}, cfg.Camera.Up, "expected default up vector to be kept")

	assert.Equal(t, 3, cfg.Tracer.Workers)
	assert.Equal(t, uint32(256), cfg.Tracer.BlockSize)
	assert.Equal(t, "naive", cfg.Tracer.Scheduler)
	assert.Equal(t, "storage", cfg.Tracer.Traversal)

	require.Equal(t, []string{"ball", "noise"}, cfg.MeshNames(), "expected file meshes to replace the defaults")
	ball := cfg.Mesh["ball"]
	assert.Equal(t, ShapeSphere, ball.Shape)
	assert.Equal(t, Vector{1, 2, 3}, ball.Center)
	assert.Equal(t, Vector{2, 2, 2}, ball.Size)
	assert.Equal(t, 12, ball.Segments)
	assert.Equal(t, uint32(4), ball.Material)

	noise := cfg.Mesh["noise"]
	assert.Equal(t, 100, noise.Count)
	assert.Equal(t, int64(42), noise.Seed)
	assert.Equal(t, 16, noise.Segments, "expected default segment count")
}

func TestParseErrors(t *testing.T) {
	specs := []string{
		"[log]\nlevel = loud\n",
		"[camera]\nwidth = 0\n",
		"[camera]\nfov = 180\n",
		"[camera]\neye = 0 0 0\nlook = 0 0 0\n",
		"[camera]\neye = 0 0 0\nlook = 0 5 0\n",
		"[camera]\neye = 1 1 1\nlook = 1 -3 1\nup = 0 2 0\n",
		"[tracer]\nscheduler = fair\n",
		"[tracer]\ntraversal = random\n",
		"[mesh \"x\"]\nshape = cone\nsize = 1\n",
		"[mesh \"x\"]\nshape = box\n",
		"[mesh \"x\"]\nshape = soup\nsize = 1\n",
		"[mesh \"x\"]\nshape = box\nsize = 1\nmaterial = 4294967295\n",
	}

	for index, text := range specs {
		if _, err := Parse(text); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("[spec %d] expected ErrInvalidConfig; got %v", index, err)
		}
	}

	if _, err := Parse("[camera]\neye = 1 2\n"); err == nil {
		t.Fatal("expected an error for a 2 component vector")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "workload.gcfg")
	require.NoError(t, os.WriteFile(fname, []byte("[camera]\nwidth = 10\nheight = 10\n"), 0o644))

	cfg, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Camera.Width)
	assert.Equal(t, []string{"floor", "sphere"}, cfg.MeshNames())

	if _, err := Load(filepath.Join(dir, "missing.gcfg")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestVectorUnmarshal(t *testing.T) {
	specs := []struct {
		in  string
		exp Vector
	}{
		{"1 2 3", Vector{1, 2, 3}},
		{"1,2,3", Vector{1, 2, 3}},
		{" -0.5 ", Vector{-0.5, -0.5, -0.5}},
	}

	for index, s := range specs {
		var v Vector
		require.NoError(t, v.UnmarshalText([]byte(s.in)), "spec %d", index)
		if v != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, v)
		}
	}

	var v Vector
	if err := v.UnmarshalText([]byte("a b c")); err == nil {
		t.Fatal("expected an error for non-numeric components")
	}
}

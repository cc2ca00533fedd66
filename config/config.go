// Package config loads the workload description used by the diagnostics
// tool: camera, tracer pool and the procedural meshes that make up a scene.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/achilleasa/photon/log"
	"github.com/achilleasa/photon/types"
	"gopkg.in/gcfg.v1"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Supported mesh shapes.
const (
	ShapePlane  = "plane"
	ShapeSphere = "sphere"
	ShapeBox    = "box"
	ShapeSoup   = "soup"
)

// A 3 component vector written as "x y z". A single value is replicated to
// all components.
type Vector types.Vec3

func (v *Vector) UnmarshalText(text []byte) error {
	fields := strings.Fields(strings.ReplaceAll(string(text), ",", " "))
	if len(fields) != 1 && len(fields) != 3 {
		return fmt.Errorf("config: expected 1 or 3 vector components; got %q", string(text))
	}

	var out Vector
	for i, f := range fields {
		c, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return fmt.Errorf("config: invalid vector component %q: %w", f, err)
		}
		out[i] = float32(c)
	}
	if len(fields) == 1 {
		out[1], out[2] = out[0], out[0]
	}

	*v = out
	return nil
}

func (v Vector) Vec3() types.Vec3 {
	return types.Vec3(v)
}

func (v Vector) String() string {
	return fmt.Sprintf("%g %g %g", v[0], v[1], v[2])
}

type LogConfig struct {
	Level string
}

type CameraConfig struct {
	Width, Height int

	// Vertical field of view in degrees.
	FOV float32

	Eye, Look, Up Vector

	// Initial rotation in degrees.
	Pitch, Yaw float32
}

type TracerConfig struct {
	// Number of tracer goroutines; 0 selects the number of CPUs.
	Workers int

	// Rays processed between cancellation checks.
	BlockSize uint32

	// Block scheduler: naive or perfect.
	Scheduler string

	// BVH traversal order: nearest or storage.
	Traversal string
}

type VerifyConfig struct {
	// Random rays cast per mesh.
	Rays int
	Seed int64
}

type MeshConfig struct {
	Shape    string
	Center   Vector
	Size     Vector
	Segments int
	Count    int
	Seed     int64
	Material uint32

	Name string
}

// Validate the mesh section and fill in optional values.
func (m *MeshConfig) CheckInit(name string) error {
	m.Name = name
	m.Shape = strings.ToLower(m.Shape)

	switch m.Shape {
	case ShapePlane, ShapeSphere, ShapeBox, ShapeSoup:
	default:
		return fmt.Errorf("%w: mesh %q: unknown shape %q", ErrInvalidConfig, name, m.Shape)
	}

	if m.Size[0] <= 0 || m.Size[1] <= 0 || m.Size[2] <= 0 {
		return fmt.Errorf("%w: mesh %q: size components must be positive", ErrInvalidConfig, name)
	}
	if m.Segments == 0 {
		m.Segments = 16
	}
	if m.Segments < 0 {
		return fmt.Errorf("%w: mesh %q: segments must be positive", ErrInvalidConfig, name)
	}
	if m.Shape == ShapeSoup && m.Count <= 0 {
		return fmt.Errorf("%w: mesh %q: soup meshes need a positive triangle count", ErrInvalidConfig, name)
	}
	if m.Material == math.MaxUint32 {
		return fmt.Errorf("%w: mesh %q: material %d is reserved", ErrInvalidConfig, name, m.Material)
	}

	return nil
}

type Config struct {
	Log    LogConfig
	Camera CameraConfig
	Tracer TracerConfig
	Verify VerifyConfig
	Mesh   map[string]*MeshConfig
}

// Get a configuration populated with defaults: a sphere resting on a floor
// plane in front of the camera.
func Default() *Config {
	cfg := defaultSettings()
	cfg.Mesh = map[string]*MeshConfig{
		"sphere": {
			Shape:    ShapeSphere,
			Center:   Vector{0, 0, -5},
			Size:     Vector{1.5, 1.5, 1.5},
			Segments: 32,
			Material: 1,
		},
		"floor": {
			Shape:    ShapePlane,
			Center:   Vector{0, -1.5, -5},
			Size:     Vector{20, 20, 20},
			Segments: 8,
			Material: 2,
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func defaultSettings() *Config {
	return &Config{
		Log: LogConfig{
			Level: "notice",
		},
		Camera: CameraConfig{
			Width:  320,
			Height: 240,
			FOV:    60,
			Eye:    Vector{0, 0, 0},
			Look:   Vector{0, 0, -1},
			Up:     Vector{0, 1, 0},
		},
		Tracer: TracerConfig{
			Workers:   runtime.NumCPU(),
			BlockSize: 1024,
			Scheduler: "perfect",
			Traversal: "nearest",
		},
		Verify: VerifyConfig{
			Rays: 10000,
			Seed: 1,
		},
	}
}

// Load a configuration file over the defaults. Mesh sections in the file
// replace the default meshes.
func Load(filename string) (*Config, error) {
	cfg := defaultSettings()
	if err := gcfg.ReadFileInto(cfg, filename); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	return cfg.finish()
}

// Parse a configuration from a string over the defaults.
func Parse(text string) (*Config, error) {
	cfg := defaultSettings()
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, fmt.Errorf("config: parsing: %w", err)
	}
	return cfg.finish()
}

func (c *Config) finish() (*Config, error) {
	if len(c.Mesh) == 0 {
		c.Mesh = Default().Mesh
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Check value ranges and initialize mesh sections.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("%w: camera dimensions must be positive; got %dx%d", ErrInvalidConfig, c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera fov must be in (0, 180); got %g", ErrInvalidConfig, c.Camera.FOV)
	}
	if c.Camera.Look.Vec3().Sub(c.Camera.Eye.Vec3()).IsZero() {
		return fmt.Errorf("%w: camera eye and look point must differ", ErrInvalidConfig)
	}
	if c.Camera.Up.Vec3().IsZero() {
		return fmt.Errorf("%w: camera up vector must be non-zero", ErrInvalidConfig)
	}
	dir := c.Camera.Look.Vec3().Sub(c.Camera.Eye.Vec3()).Normalize()
	if dir.Cross(c.Camera.Up.Vec3().Normalize()).Len() < 1e-6 {
		return fmt.Errorf("%w: camera view direction must not be parallel to the up vector", ErrInvalidConfig)
	}

	if c.Tracer.Workers == 0 {
		c.Tracer.Workers = runtime.NumCPU()
	}
	if c.Tracer.Workers < 0 {
		return fmt.Errorf("%w: tracer workers must be positive; got %d", ErrInvalidConfig, c.Tracer.Workers)
	}
	c.Tracer.Scheduler = strings.ToLower(c.Tracer.Scheduler)
	if c.Tracer.Scheduler != "naive" && c.Tracer.Scheduler != "perfect" {
		return fmt.Errorf("%w: unknown scheduler %q", ErrInvalidConfig, c.Tracer.Scheduler)
	}
	c.Tracer.Traversal = strings.ToLower(c.Tracer.Traversal)
	if c.Tracer.Traversal != "nearest" && c.Tracer.Traversal != "storage" {
		return fmt.Errorf("%w: unknown traversal %q", ErrInvalidConfig, c.Tracer.Traversal)
	}

	if c.Verify.Rays < 0 {
		return fmt.Errorf("%w: verify rays must not be negative", ErrInvalidConfig)
	}

	for name, mesh := range c.Mesh {
		if err := mesh.CheckInit(name); err != nil {
			return err
		}
	}
	return nil
}

// Get the mesh names in sorted order.
func (c *Config) MeshNames() []string {
	names := make([]string, 0, len(c.Mesh))
	for name := range c.Mesh {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

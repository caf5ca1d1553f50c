package scene

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/geometry"
	"github.com/calebmartin/go-pathtracer/pkg/material"
)

const validScene = `
camera:
  look_from: [-2, 2, 1]
  look_at: [0, 0, -1]
  up: [0, 1, 0]
  vfov: 20
  aperture: 0.1
  focus_distance: 3.4
background:
  top: [0.5, 0.7, 1.0]
  bottom: [1.0, 1.0, 1.0]
materials:
  - name: ground
    type: lambertian
    albedo: [0.8, 0.8, 0.0]
  - name: glass
    type: dielectric
    refractive_index: 1.5
  - name: gold
    type: metal
    albedo: [0.8, 0.6, 0.2]
    fuzz: 0.3
spheres:
  - center: [0, -100.5, -1]
    radius: 100
    material: ground
  - center: [-1, 0, -1]
    radius: 0.5
    material: glass
  - center: [-1, 0, -1]
    radius: -0.45
    material: glass
  - center: [1, 0, -1]
    radius: 0.5
    material: gold
`

func TestLoad_ValidScene(t *testing.T) {
	s, err := Load(strings.NewReader(validScene))
	require.NoError(t, err)

	assert.Len(t, s.Shapes, 4)
	assert.Equal(t, core.NewVec3(-2, 2, 1), s.CameraConfig.LookFrom)
	assert.Equal(t, core.NewVec3(0, 0, -1), s.CameraConfig.LookAt)
	assert.Equal(t, 20.0, s.CameraConfig.VFov)
	assert.Equal(t, 0.1, s.CameraConfig.Aperture)
	assert.Equal(t, 3.4, s.CameraConfig.FocusDistance)
	assert.NotNil(t, s.Background)

	require.NoError(t, s.Preprocess())
}

func TestLoad_SharedMaterials(t *testing.T) {
	s, err := Load(strings.NewReader(validScene))
	require.NoError(t, err)

	// The outer glass shell and the hollow inner shell reference the same
	// material instance
	outer, ok := s.Shapes[1].(*geometry.Sphere)
	require.True(t, ok)
	inner, ok := s.Shapes[2].(*geometry.Sphere)
	require.True(t, ok)
	assert.Same(t, outer.Material, inner.Material)
	assert.Equal(t, -0.45, inner.Radius)

	glass, ok := outer.Material.(*material.Dielectric)
	require.True(t, ok)
	assert.Equal(t, 1.5, glass.RefractiveIndex)
}

func TestLoad_CameraDefaults(t *testing.T) {
	minimal := `
materials:
  - name: m
    type: lambertian
    albedo: [0.5, 0.5, 0.5]
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: m
`
	s, err := Load(strings.NewReader(minimal))
	require.NoError(t, err)

	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up)
	assert.Equal(t, 90.0, s.CameraConfig.VFov)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "materials: [unclosed",
			wantErr: "decode scene",
		},
		{
			name: "unknown material type",
			yaml: `
materials:
  - name: weird
    type: phong
    albedo: [1, 1, 1]
`,
			wantErr: "unknown material type",
		},
		{
			name: "empty material name",
			yaml: `
materials:
  - type: lambertian
    albedo: [1, 1, 1]
`,
			wantErr: "empty name",
		},
		{
			name: "duplicate material name",
			yaml: `
materials:
  - name: m
    type: lambertian
    albedo: [1, 1, 1]
  - name: m
    type: metal
    albedo: [1, 1, 1]
`,
			wantErr: "duplicate material",
		},
		{
			name: "unknown material reference",
			yaml: `
materials:
  - name: m
    type: lambertian
    albedo: [1, 1, 1]
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: missing
`,
			wantErr: "unknown material",
		},
		{
			name: "zero radius sphere",
			yaml: `
materials:
  - name: m
    type: lambertian
    albedo: [1, 1, 1]
spheres:
  - center: [0, 0, -1]
    radius: 0
    material: m
`,
			wantErr: "zero radius",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	original, err := Load(strings.NewReader(validScene))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, original.Save(&buf))

	reloaded, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.CameraConfig, reloaded.CameraConfig)
	require.Len(t, reloaded.Shapes, len(original.Shapes))
	for i := range original.Shapes {
		a := original.Shapes[i].(*geometry.Sphere)
		b := reloaded.Shapes[i].(*geometry.Sphere)
		assert.Equal(t, a.Center, b.Center, "sphere %d center", i)
		assert.Equal(t, a.Radius, b.Radius, "sphere %d radius", i)
		assert.IsType(t, a.Material, b.Material, "sphere %d material kind", i)
	}

	// Material sharing survives the round trip: the hollow glass shell still
	// references the same instance as the outer sphere
	outer := reloaded.Shapes[1].(*geometry.Sphere)
	inner := reloaded.Shapes[2].(*geometry.Sphere)
	assert.Same(t, outer.Material, inner.Material)

	// The background gradient colors survive too
	up := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	down := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	assert.Equal(t, original.Background(up), reloaded.Background(up))
	assert.Equal(t, original.Background(down), reloaded.Background(down))
}

func TestSaveFile_RoundTrip(t *testing.T) {
	original := NewDefaultScene()
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, original.SaveFile(path))

	reloaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original.CameraConfig.LookFrom, reloaded.CameraConfig.LookFrom)
	assert.Len(t, reloaded.Shapes, len(original.Shapes))
	require.NoError(t, reloaded.Preprocess())
}

type opaqueMaterial struct{}

func (opaqueMaterial) Scatter(core.Ray, core.HitRecord, *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestSave_Unserializable(t *testing.T) {
	t.Run("unknown material", func(t *testing.T) {
		s := NewScene(NewDefaultScene().CameraConfig)
		s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, opaqueMaterial{}))

		err := s.Save(&bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be serialized")
	})

	t.Run("non-sphere shape", func(t *testing.T) {
		s := NewScene(NewDefaultScene().CameraConfig)
		s.Add(geometry.NewShapeList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		))

		err := s.Save(&bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be serialized")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScene), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Shapes, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open scene")
}

package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/geometry"
	"github.com/calebmartin/go-pathtracer/pkg/material"
	"github.com/calebmartin/go-pathtracer/pkg/renderer"
)

// sceneFile is the YAML scene description
type sceneFile struct {
	Camera     cameraFile     `yaml:"camera"`
	Background backgroundFile `yaml:"background"`
	Materials  []materialFile `yaml:"materials"`
	Spheres    []sphereFile   `yaml:"spheres"`
}

type cameraFile struct {
	LookFrom      [3]float64 `yaml:"look_from"`
	LookAt        [3]float64 `yaml:"look_at"`
	Up            [3]float64 `yaml:"up"`
	VFov          float64    `yaml:"vfov"`
	Aperture      float64    `yaml:"aperture"`
	FocusDistance float64    `yaml:"focus_distance"`
}

type backgroundFile struct {
	Top    *[3]float64 `yaml:"top"`
	Bottom *[3]float64 `yaml:"bottom"`
}

type materialFile struct {
	Name            string     `yaml:"name"`
	Type            string     `yaml:"type"`
	Albedo          [3]float64 `yaml:"albedo"`
	Fuzz            float64    `yaml:"fuzz"`
	RefractiveIndex float64    `yaml:"refractive_index"`
}

type sphereFile struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

func toVec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func fromVec3(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// LoadFile reads a YAML scene description from disk
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML scene description and builds the in-memory scene.
// Materials are shared: every sphere referencing a name gets the same
// material instance.
func Load(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var file sceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      toVec3(file.Camera.LookFrom),
		LookAt:        toVec3(file.Camera.LookAt),
		Up:            toVec3(file.Camera.Up),
		VFov:          file.Camera.VFov,
		Aperture:      file.Camera.Aperture,
		FocusDistance: file.Camera.FocusDistance,
	}
	if cameraConfig.Up.NearZero() {
		cameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if cameraConfig.VFov == 0 {
		cameraConfig.VFov = 90.0
	}

	s := NewScene(cameraConfig)

	if file.Background.Top != nil && file.Background.Bottom != nil {
		s.SetSkyGradient(toVec3(*file.Background.Top), toVec3(*file.Background.Bottom))
	}

	materials := make(map[string]core.Material, len(file.Materials))
	for _, m := range file.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("scene: material with empty name")
		}
		if _, exists := materials[m.Name]; exists {
			return nil, fmt.Errorf("scene: duplicate material %q", m.Name)
		}

		switch m.Type {
		case "lambertian":
			materials[m.Name] = material.NewLambertian(toVec3(m.Albedo))
		case "metal":
			materials[m.Name] = material.NewMetal(toVec3(m.Albedo), m.Fuzz)
		case "dielectric":
			materials[m.Name] = material.NewDielectric(m.RefractiveIndex)
		default:
			return nil, fmt.Errorf("scene: unknown material type %q for %q", m.Type, m.Name)
		}
	}

	for i, sp := range file.Spheres {
		if sp.Radius == 0 {
			return nil, fmt.Errorf("scene: sphere %d has zero radius", i)
		}
		mat, ok := materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("scene: sphere %d references unknown material %q", i, sp.Material)
		}
		s.Add(geometry.NewSphere(toVec3(sp.Center), sp.Radius, mat))
	}

	return s, nil
}

// SaveFile writes the YAML scene description to disk
func (s *Scene) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()
	return s.Save(f)
}

// Save writes the scene as a YAML scene description. A material shared by
// several spheres is written once and referenced by name, so Load rebuilds
// the same sharing.
func (s *Scene) Save(w io.Writer) error {
	file := sceneFile{
		Camera: cameraFile{
			LookFrom:      fromVec3(s.CameraConfig.LookFrom),
			LookAt:        fromVec3(s.CameraConfig.LookAt),
			Up:            fromVec3(s.CameraConfig.Up),
			VFov:          s.CameraConfig.VFov,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
	}

	if s.skyTop != nil && s.skyBottom != nil {
		top := fromVec3(*s.skyTop)
		bottom := fromVec3(*s.skyBottom)
		file.Background = backgroundFile{Top: &top, Bottom: &bottom}
	}

	names := make(map[core.Material]string)
	for i, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return fmt.Errorf("scene: shape %d (%T) cannot be serialized", i, shape)
		}

		name, ok := names[sphere.Material]
		if !ok {
			m, err := describeMaterial(sphere.Material, len(names))
			if err != nil {
				return err
			}
			name = m.Name
			names[sphere.Material] = name
			file.Materials = append(file.Materials, m)
		}

		file.Spheres = append(file.Spheres, sphereFile{
			Center:   fromVec3(sphere.Center),
			Radius:   sphere.Radius,
			Material: name,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// describeMaterial maps a material instance back to its YAML description,
// named by kind and discovery order
func describeMaterial(mat core.Material, index int) (materialFile, error) {
	switch m := mat.(type) {
	case *material.Lambertian:
		return materialFile{
			Name:   fmt.Sprintf("lambertian-%d", index),
			Type:   "lambertian",
			Albedo: fromVec3(m.Albedo),
		}, nil
	case *material.Metal:
		return materialFile{
			Name:   fmt.Sprintf("metal-%d", index),
			Type:   "metal",
			Albedo: fromVec3(m.Albedo),
			Fuzz:   m.Fuzz,
		}, nil
	case *material.Dielectric:
		return materialFile{
			Name:            fmt.Sprintf("dielectric-%d", index),
			Type:            "dielectric",
			RefractiveIndex: m.RefractiveIndex,
		}, nil
	default:
		return materialFile{}, fmt.Errorf("scene: material %T cannot be serialized", mat)
	}
}

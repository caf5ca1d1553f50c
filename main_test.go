package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		wantErr   bool
	}{
		{"default scene", "default", false},
		{"cover scene", "cover", false},
		{"unknown scene", "sunset", true},
		{"missing yaml file", "no-such-scene.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 42)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createScene(%q) error = %v, wantErr %v", tt.sceneType, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(s.Shapes) == 0 {
				t.Error("Expected a scene with shapes")
			}
			if err := s.Preprocess(); err != nil {
				t.Errorf("Preprocess failed: %v", err)
			}
		})
	}
}

func TestCreateScene_YAMLFile(t *testing.T) {
	content := `
camera:
  look_from: [0, 0, 0]
  look_at: [0, 0, -1]
materials:
  - name: m
    type: lambertian
    albedo: [0.5, 0.5, 0.5]
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: m
`
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := createScene(path, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Shapes) != 1 {
		t.Errorf("Expected 1 shape, got %d", len(s.Shapes))
	}
}

func TestRun_SmallRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	if err := run("default", 16, 2.0, 2, 3, 42, 1, out); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("Expected a non-empty output file")
	}
}

func TestWriteOutput_PPM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ppm")
	if err := run("default", 8, 2.0, 1, 2, 42, 1, out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 3 || string(data[:3]) != "P3\n" {
		t.Error("Expected a plain PPM header")
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PreludeEntry is one named type made available to every checked file.
// Entries are applied in order; later entries shadow earlier ones.
type PreludeEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Project is the parsed seam.yaml.
type Project struct {
	Prelude []PreludeEntry `yaml:"prelude"`
}

// LoadProject reads and parses a project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &project, nil
}

// FindProjectFile walks from dir toward the filesystem root looking for a
// project file.
func FindProjectFile(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

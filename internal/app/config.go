package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DotDir is the project state directory created by init.
const DotDir = ".autorig"

const configFile = "config.yaml"

// Config holds runtime wiring options for building the app.
type Config struct {
	ProjectDir string       // project root holding .autorig
	HostURL    string       // rigd base URL, e.g. http://127.0.0.1:8733; empty means local files
	HTTP       *http.Client // optional; defaults to http.DefaultClient
}

// ProjectConfig is the contents of .autorig/config.yaml.
type ProjectConfig struct {
	Mesh     string `yaml:"mesh,omitempty"`     // OBJ path, relative to the project root
	Template string `yaml:"template,omitempty"` // template YAML path; empty means the built-in biped
}

// LoadProjectConfig reads config.yaml from the state directory. A missing
// file yields the zero config.
func LoadProjectConfig(dotDir string) (ProjectConfig, error) {
	b, err := os.ReadFile(filepath.Join(dotDir, configFile))
	if errors.Is(err, os.ErrNotExist) {
		return ProjectConfig{}, nil
	}
	if err != nil {
		return ProjectConfig{}, err
	}
	var pc ProjectConfig
	if err := yaml.Unmarshal(b, &pc); err != nil {
		return ProjectConfig{}, fmt.Errorf("%s: %w", configFile, err)
	}
	return pc, nil
}

// SaveProjectConfig writes config.yaml, creating the state directory first.
func SaveProjectConfig(dotDir string, pc ProjectConfig) error {
	b, err := yaml.Marshal(pc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dotDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dotDir, configFile), b, 0o644)
}

// FindProject walks up from start looking for a .autorig directory and
// returns the project root that holds it.
func FindProject(start string) (string, bool) {
	dir := start
	for {
		if fi, err := os.Stat(filepath.Join(dir, DotDir)); err == nil && fi.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve makes a project-relative path absolute against the project root.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

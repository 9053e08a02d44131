package app

import (
	"net/http"
	"path/filepath"

	"autorig/internal/domain"
	"autorig/internal/host"
	"autorig/internal/scene"
	"autorig/internal/services/joint"
	"autorig/internal/services/selection"
	"autorig/internal/services/skeleton"
	"autorig/internal/services/spine"
	"autorig/internal/store"
	"autorig/internal/template"
)

// Wire bundles the stores, services and template for the CLI.
type Wire struct {
	Dir     string // project root
	Project ProjectConfig

	Store     *store.FileStore
	Scene     *scene.Service
	Selection domain.SelectionService
	Joints    domain.JointService
	Spine     domain.SpineService
	Skeleton  domain.SkeletonService
	Template  domain.Template

	Host domain.HostClient // nil unless cfg.HostURL is set
	HTTP *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	dot := filepath.Join(cfg.ProjectDir, DotDir)
	fs := store.NewFileStore(dot)

	pc, err := LoadProjectConfig(dot)
	if err != nil {
		return nil, err
	}

	tmpl := template.Default()
	if pc.Template != "" {
		tmpl, err = template.Load(Resolve(cfg.ProjectDir, pc.Template))
		if err != nil {
			return nil, err
		}
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var hc domain.HostClient
	if cfg.HostURL != "" {
		client := host.NewClient(cfg.HostURL)
		client.HTTP = httpClient
		hc = client
	}

	sceneSvc := scene.New(fs)

	return &Wire{
		Dir:       cfg.ProjectDir,
		Project:   pc,
		Store:     fs,
		Scene:     sceneSvc,
		Selection: selection.New(sceneSvc, fs),
		Joints:    joint.New(sceneSvc, fs, tmpl),
		Spine:     spine.New(sceneSvc, fs),
		Skeleton:  skeleton.New(sceneSvc, fs, tmpl),
		Template:  tmpl,
		Host:      hc,
		HTTP:      httpClient,
	}, nil
}

// DotDirPath returns the project's state directory.
func (w *Wire) DotDirPath() string { return filepath.Join(w.Dir, DotDir) }

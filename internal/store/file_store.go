package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"autorig/internal/domain"
)

const (
	sceneFile     = "scene.json"
	rigFile       = "rig.json"
	selectionFile = "selection.json"
)

// FileStore persists project documents under a single directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

var (
	_ domain.SceneStore     = (*FileStore)(nil)
	_ domain.RigStore       = (*FileStore)(nil)
	_ domain.SelectionStore = (*FileStore)(nil)
)

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string { return s.dir }

// Exists reports whether the store directory is already on disk.
func (s *FileStore) Exists() (bool, error) {
	fi, err := os.Stat(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

// ---------- Scene ----------

func (s *FileStore) LoadScene() (domain.Scene, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sc domain.Scene
	found, err := readJSON(filepath.Join(s.dir, sceneFile), &sc)
	if err != nil {
		return domain.Scene{}, false, err
	}
	return sc, found, nil
}

func (s *FileStore) SaveScene(sc domain.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, sceneFile), sc, 0o644)
}

// ---------- Rig ----------

func (s *FileStore) LoadRig() (domain.Rig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r domain.Rig
	found, err := readJSON(filepath.Join(s.dir, rigFile), &r)
	if err != nil {
		return domain.Rig{}, false, err
	}
	return r, found, nil
}

func (s *FileStore) SaveRig(r domain.Rig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, rigFile), r, 0o644)
}

// ---------- Selection ----------

func (s *FileStore) LoadSelection() (domain.Selection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sel domain.Selection
	found, err := readJSON(filepath.Join(s.dir, selectionFile), &sel)
	if err != nil {
		return domain.Selection{}, false, err
	}
	return sel, found, nil
}

func (s *FileStore) SaveSelection(sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, selectionFile), sel, 0o644)
}

func (s *FileStore) ClearSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, selectionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

package selection

import (
	"time"

	"autorig/internal/domain"
)

// Service drives the active vertex selection. Every change is applied to the
// scene host and persisted to the selection store, pinned to the mesh
// fingerprint it was made against so a re-exported mesh marks it stale.
type Service struct {
	host domain.SceneHost
	sels domain.SelectionStore
}

var _ domain.SelectionService = (*Service)(nil)

// New constructs a selection service over the host and store.
func New(host domain.SceneHost, sels domain.SelectionStore) *Service {
	return &Service{host: host, sels: sels}
}

// Set replaces the active selection with the given vertex indices.
func (s *Service) Set(indices []int) (domain.Selection, error) {
	norm, err := s.host.SetSelection(indices)
	if err != nil {
		return domain.Selection{}, err
	}
	return s.persist(norm)
}

// Add merges vertex indices into the active selection.
func (s *Service) Add(indices []int) (domain.Selection, error) {
	norm, err := s.host.AddToSelection(indices)
	if err != nil {
		return domain.Selection{}, err
	}
	return s.persist(norm)
}

// SelectGroup replaces the active selection with a named vertex group.
func (s *Service) SelectGroup(name string) (domain.Selection, error) {
	norm, err := s.host.SelectGroup(name)
	if err != nil {
		return domain.Selection{}, err
	}
	return s.persist(norm)
}

// Clear empties the active selection and drops the persisted record.
func (s *Service) Clear() error {
	if err := s.host.ClearSelection(); err != nil {
		return err
	}
	return s.sels.ClearSelection()
}

// Current returns the active selection and the vertex positions it covers.
func (s *Service) Current() ([]int, []domain.Vector3, error) {
	idx, err := s.host.CurrentSelection()
	if err != nil {
		return nil, nil, err
	}
	pts, err := s.host.PointPositions(idx)
	if err != nil {
		return nil, nil, err
	}
	return idx, pts, nil
}

// Stale reports whether the persisted selection was made against an earlier
// revision of the mesh. No persisted selection is not stale.
func (s *Service) Stale() (bool, error) {
	sel, found, err := s.sels.LoadSelection()
	if err != nil {
		return false, err
	}
	if !found || sel.MeshFingerprint == "" {
		return false, nil
	}
	fp, err := s.host.MeshFingerprint()
	if err != nil {
		return false, err
	}
	return sel.MeshFingerprint != fp, nil
}

func (s *Service) persist(indices []int) (domain.Selection, error) {
	fp, err := s.host.MeshFingerprint()
	if err != nil {
		return domain.Selection{}, err
	}
	sel := domain.Selection{
		Indices:         indices,
		MeshFingerprint: fp,
		SavedUTC:        time.Now().UTC().Unix(),
	}
	if err := s.sels.SaveSelection(sel); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

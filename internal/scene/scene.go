package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"autorig/internal/domain"
)

// Service is the file-backed scene host. Failures use the domain contract
// errors (domain.ErrNoScene, domain.ErrObjectNotFound, ...) so callers can
// branch on the condition.
type Service struct {
	store domain.SceneStore
}

var _ domain.SceneHost = (*Service)(nil)

// New returns a scene service over the given store.
func New(store domain.SceneStore) *Service { return &Service{store: store} }

// LoadMesh replaces the scene with a freshly imported mesh. Point objects
// and the active selection are discarded: they referred to the old geometry.
func (s *Service) LoadMesh(name, fingerprint string, vertices []domain.Vector3, groups map[string][]int) error {
	if len(vertices) == 0 {
		return fmt.Errorf("%s: %w", name, domain.ErrEmptyMesh)
	}
	sc := domain.Scene{
		MeshName:        name,
		MeshFingerprint: fingerprint,
		Vertices:        append([]domain.Vector3(nil), vertices...),
	}
	if len(groups) > 0 {
		sc.Groups = make(map[string][]int, len(groups))
		for g, idx := range groups {
			sc.Groups[g] = append([]int(nil), idx...)
		}
	}
	return s.store.SaveScene(sc)
}

// Info summarises the loaded scene.
func (s *Service) Info() (domain.SceneInfo, error) {
	sc, err := s.load()
	if err != nil {
		return domain.SceneInfo{}, err
	}
	return domain.SceneInfo{
		MeshName:        sc.MeshName,
		MeshFingerprint: sc.MeshFingerprint,
		VertexCount:     len(sc.Vertices),
		GroupCount:      len(sc.Groups),
		ObjectCount:     len(sc.Objects),
		SelectionSize:   len(sc.Selection),
	}, nil
}

// MeshFingerprint returns the fingerprint of the loaded mesh.
func (s *Service) MeshFingerprint() (string, error) {
	sc, err := s.load()
	if err != nil {
		return "", err
	}
	return sc.MeshFingerprint, nil
}

// CurrentSelection returns the active vertex selection, sorted ascending.
func (s *Service) CurrentSelection() ([]int, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]int(nil), sc.Selection...), nil
}

// SetSelection replaces the active selection. Indices are deduplicated and
// sorted; each must address a mesh vertex.
func (s *Service) SetSelection(indices []int) ([]int, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	norm, err := normalize(sc, indices)
	if err != nil {
		return nil, err
	}
	sc.Selection = norm
	if err := s.store.SaveScene(sc); err != nil {
		return nil, err
	}
	return append([]int(nil), norm...), nil
}

// AddToSelection merges indices into the active selection.
func (s *Service) AddToSelection(indices []int) ([]int, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	norm, err := normalize(sc, append(append([]int(nil), sc.Selection...), indices...))
	if err != nil {
		return nil, err
	}
	sc.Selection = norm
	if err := s.store.SaveScene(sc); err != nil {
		return nil, err
	}
	return append([]int(nil), norm...), nil
}

// SelectGroup replaces the active selection with a named vertex group.
// Group names match case-insensitively.
func (s *Service) SelectGroup(name string) ([]int, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	idx, ok := sc.Groups[name]
	if !ok {
		for g, v := range sc.Groups {
			if strings.EqualFold(g, name) {
				idx, ok = v, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGroup, name)
	}
	norm, err := normalize(sc, idx)
	if err != nil {
		return nil, err
	}
	sc.Selection = norm
	if err := s.store.SaveScene(sc); err != nil {
		return nil, err
	}
	return append([]int(nil), norm...), nil
}

// ClearSelection empties the active selection.
func (s *Service) ClearSelection() error {
	sc, err := s.load()
	if err != nil {
		return err
	}
	sc.Selection = nil
	return s.store.SaveScene(sc)
}

// PointPositions resolves vertex indices to world-space positions.
func (s *Service) PointPositions(indices []int) ([]domain.Vector3, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Vector3, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(sc.Vertices) {
			return nil, fmt.Errorf("%w: %d (mesh has %d vertices)", domain.ErrVertexRange, i, len(sc.Vertices))
		}
		out = append(out, sc.Vertices[i])
	}
	return out, nil
}

// CreateObject adds a point object at pos.
func (s *Service) CreateObject(name string, pos domain.Vector3) (domain.SceneObject, error) {
	if name == "" {
		return domain.SceneObject{}, errors.New("object name is empty")
	}
	sc, err := s.load()
	if err != nil {
		return domain.SceneObject{}, err
	}
	if _, taken := sc.Objects[name]; taken {
		return domain.SceneObject{}, fmt.Errorf("%w: %q", domain.ErrObjectExists, name)
	}
	obj := domain.SceneObject{Name: name, Position: pos}
	if sc.Objects == nil {
		sc.Objects = make(map[string]domain.SceneObject)
	}
	sc.Objects[name] = obj
	if err := s.store.SaveScene(sc); err != nil {
		return domain.SceneObject{}, err
	}
	return obj, nil
}

// DeleteObject removes a point object. Children of the deleted object become
// roots; they are not deleted with their parent.
func (s *Service) DeleteObject(name string) error {
	sc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sc.Objects[name]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrObjectNotFound, name)
	}
	delete(sc.Objects, name)
	for n, o := range sc.Objects {
		if o.Parent == name {
			o.Parent = ""
			sc.Objects[n] = o
		}
	}
	return s.store.SaveScene(sc)
}

// SetParent parents child under parent. An empty parent clears the link.
// Reparenting an already-parented object is allowed.
func (s *Service) SetParent(child, parent string) error {
	sc, err := s.load()
	if err != nil {
		return err
	}
	obj, ok := sc.Objects[child]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrObjectNotFound, child)
	}
	if parent == "" {
		obj.Parent = ""
		sc.Objects[child] = obj
		return s.store.SaveScene(sc)
	}
	if _, ok := sc.Objects[parent]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrObjectNotFound, parent)
	}
	// Walking up from the new parent must never arrive back at the child.
	for at := parent; at != ""; {
		if at == child {
			return fmt.Errorf("%w: %q under %q", domain.ErrParentCycle, child, parent)
		}
		at = sc.Objects[at].Parent
	}
	obj.Parent = parent
	sc.Objects[child] = obj
	return s.store.SaveScene(sc)
}

// ObjectExists reports whether a named object is in the scene.
func (s *Service) ObjectExists(name string) (bool, error) {
	sc, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := sc.Objects[name]
	return ok, nil
}

// Object returns a named object.
func (s *Service) Object(name string) (domain.SceneObject, bool, error) {
	sc, err := s.load()
	if err != nil {
		return domain.SceneObject{}, false, err
	}
	obj, ok := sc.Objects[name]
	return obj, ok, nil
}

// Objects lists every point object, ordered by name.
func (s *Service) Objects() ([]domain.SceneObject, error) {
	sc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.SceneObject, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) load() (domain.Scene, error) {
	sc, found, err := s.store.LoadScene()
	if err != nil {
		return domain.Scene{}, err
	}
	if !found {
		return domain.Scene{}, domain.ErrNoScene
	}
	return sc, nil
}

// normalize sorts, deduplicates and range-checks selection indices.
func normalize(sc domain.Scene, indices []int) ([]int, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	out := append([]int(nil), indices...)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if v < 0 || v >= len(sc.Vertices) {
			return nil, fmt.Errorf("%w: %d (mesh has %d vertices)", domain.ErrVertexRange, v, len(sc.Vertices))
		}
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}
	return out[:n], nil
}

package spine

import (
	"errors"
	"fmt"

	"autorig/internal/domain"
	"autorig/internal/geometry"
)

var (
	// ErrEndpointsMissing is returned when the Pelvis or Neck joint is not
	// placed; the spine spans the segment between them.
	ErrEndpointsMissing = errors.New("pelvis and neck joints must be placed first")
	// ErrSpineExists is returned when the chain has already been built.
	ErrSpineExists = errors.New("spine already built")
	// ErrNoSpine is returned for operations that need a built chain.
	ErrNoSpine = errors.New("no spine built")
	// ErrMinSpineCount is returned when a change would drop the joint count
	// below the minimum of one.
	ErrMinSpineCount = errors.New("spine needs at least one joint")
)

// Service manages the spine chain between the Pelvis and Neck joints.
//
// The chain is a run of Spine_0..Spine_{n-1} point objects distributed
// evenly on the segment between the two endpoints: with n joints every gap,
// endpoint to joint and joint to joint, is (neck-pelvis)/(n+1), so the
// endpoints themselves are never occupied. The count defaults to three.
// Count changes take effect immediately when the chain is built: the old
// joints are swept and the chain is rebuilt at the new distribution.
type Service struct {
	host domain.SceneHost
	rigs domain.RigStore
}

var _ domain.SpineService = (*Service)(nil)

// New constructs a spine service.
func New(host domain.SceneHost, rigs domain.RigStore) *Service {
	return &Service{host: host, rigs: rigs}
}

// Create builds the chain at the configured count.
func (s *Service) Create() ([]domain.SceneObject, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return nil, err
	}
	if rig.Spine.Built {
		return nil, ErrSpineExists
	}
	objs, err := s.build(&rig, rig.SpineCount())
	if err != nil {
		return nil, err
	}
	if err := s.rigs.SaveRig(rig); err != nil {
		return nil, err
	}
	return objs, nil
}

// Delete removes every spine joint and turns the chain's indicator off. The
// configured count survives so a later Create rebuilds the same chain.
func (s *Service) Delete() error {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return err
	}
	if !rig.Spine.Built {
		return ErrNoSpine
	}
	if err := s.sweep(); err != nil {
		return err
	}
	rig.Spine.Built = false
	return s.rigs.SaveRig(rig)
}

// Add raises the joint count by one.
func (s *Service) Add() (int, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}
	return s.apply(&rig, rig.SpineCount()+1)
}

// Remove lowers the joint count by one, never below the minimum.
func (s *Service) Remove() (int, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}
	next := rig.SpineCount() - 1
	if next < domain.MinSpineCount {
		return rig.SpineCount(), fmt.Errorf("%w: count stays at %d", ErrMinSpineCount, rig.SpineCount())
	}
	return s.apply(&rig, next)
}

// Reset restores the default joint count.
func (s *Service) Reset() (int, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}
	return s.apply(&rig, domain.DefaultSpineCount)
}

// SetCount sets the joint count directly.
func (s *Service) SetCount(n int) (int, error) {
	if n < domain.MinSpineCount {
		return 0, fmt.Errorf("%w: got %d", ErrMinSpineCount, n)
	}
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}
	return s.apply(&rig, n)
}

// Count returns the configured joint count.
func (s *Service) Count() (int, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}
	return rig.SpineCount(), nil
}

// apply stores the new count, rebuilding the chain when it is built.
func (s *Service) apply(rig *domain.Rig, count int) (int, error) {
	if rig.Spine.Built {
		if _, err := s.build(rig, count); err != nil {
			return 0, err
		}
	} else {
		rig.Spine.Count = count
	}
	if err := s.rigs.SaveRig(*rig); err != nil {
		return 0, err
	}
	return count, nil
}

// build sweeps any existing spine joints and creates the chain at count.
func (s *Service) build(rig *domain.Rig, count int) ([]domain.SceneObject, error) {
	pelvis := rig.Slot(domain.SlotPelvis)
	neck := rig.Slot(domain.SlotNeck)
	if !placed(pelvis) || !placed(neck) {
		return nil, ErrEndpointsMissing
	}
	if err := s.sweep(); err != nil {
		return nil, err
	}

	pts := geometry.SpanPoints(*pelvis.Position, *neck.Position, count)
	objs := make([]domain.SceneObject, 0, len(pts))
	for i, p := range pts {
		obj, err := s.host.CreateObject(domain.SpineJointName(i), p)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	rig.Spine.Built = true
	rig.Spine.Count = count
	return objs, nil
}

// sweep deletes every Spine_* object in the scene, tolerating ones that are
// already gone.
func (s *Service) sweep() error {
	objs, err := s.host.Objects()
	if err != nil {
		return err
	}
	for _, o := range objs {
		if !domain.IsSpineJointName(o.Name) {
			continue
		}
		if err := s.host.DeleteObject(o.Name); err != nil && !errors.Is(err, domain.ErrObjectNotFound) {
			return err
		}
	}
	return nil
}

func placed(st domain.SlotState) bool { return st.Indicator && st.Position != nil }

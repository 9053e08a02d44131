package joint

import (
	"errors"
	"fmt"
	"time"

	"autorig/internal/domain"
	"autorig/internal/geometry"
)

var (
	// ErrUnknownSlot is returned for a slot name the template does not declare.
	ErrUnknownSlot = errors.New("unknown rig slot")
	// ErrEmptySelection is returned when a joint is created with nothing selected.
	ErrEmptySelection = errors.New("nothing selected")
	// ErrJointExists is returned when a slot's joint has already been placed.
	ErrJointExists = errors.New("joint already placed")
	// ErrJointNotBuilt is returned for operations that need a placed joint.
	ErrJointNotBuilt = errors.New("joint not placed")
	// ErrNotMirrorable is returned when a center slot is asked to mirror.
	ErrNotMirrorable = errors.New("slot does not mirror")
	// ErrAlreadyMirrored is returned when a slot's twin has already been made.
	ErrAlreadyMirrored = errors.New("joint already mirrored")
	// ErrNoMirrorPlane is returned when a position sits exactly between the
	// YZ and XY planes, so neither dominates.
	ErrNoMirrorPlane = errors.New("no mirror plane dominates")
)

// Service places, mirrors and deletes template-slot joints.
//
// A joint is placed at the centroid of the current vertex selection and
// recorded in the rig document: the slot's indicator light turns on only
// after the scene object exists. Deleting a joint removes the scene object,
// its mirrored twin if one was made, and resets the slot state.
type Service struct {
	host domain.SceneHost
	rigs domain.RigStore
	tmpl domain.Template
}

var _ domain.JointService = (*Service)(nil)

// New constructs a joint service for the given template.
func New(host domain.SceneHost, rigs domain.RigStore, tmpl domain.Template) *Service {
	return &Service{host: host, rigs: rigs, tmpl: tmpl}
}

// Create places the slot's joint at the centroid of the current selection.
func (s *Service) Create(slot domain.SlotName) (domain.SceneObject, error) {
	def, err := s.resolve(slot)
	if err != nil {
		return domain.SceneObject{}, err
	}

	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return domain.SceneObject{}, err
	}
	st := rig.Slot(def.Name)
	if st.Indicator {
		return domain.SceneObject{}, fmt.Errorf("%w: %s", ErrJointExists, def.Name)
	}

	idx, err := s.host.CurrentSelection()
	if err != nil {
		return domain.SceneObject{}, err
	}
	if len(idx) == 0 {
		return domain.SceneObject{}, fmt.Errorf("%w: select vertices for %s first", ErrEmptySelection, def.Name)
	}
	pts, err := s.host.PointPositions(idx)
	if err != nil {
		return domain.SceneObject{}, err
	}
	center, err := geometry.Centroid(pts)
	if err != nil {
		return domain.SceneObject{}, err
	}

	obj, err := s.host.CreateObject(def.Name.String(), center)
	if err != nil {
		return domain.SceneObject{}, err
	}

	st.Indicator = true
	st.Position = &center
	st.MirrorPosition = nil
	st.PlacedUTC = time.Now().UTC().Unix()
	rig.SetSlot(st)
	if err := s.rigs.SaveRig(rig); err != nil {
		return domain.SceneObject{}, err
	}
	return obj, nil
}

// Delete removes the slot's joint and its mirrored twin, then resets the
// slot state. A scene object that has already vanished is not an error; the
// indicator is cleared regardless.
func (s *Service) Delete(slot domain.SlotName) error {
	def, err := s.resolve(slot)
	if err != nil {
		return err
	}
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return err
	}
	st := rig.Slot(def.Name)
	if !st.Indicator {
		return fmt.Errorf("%w: %s", ErrJointNotBuilt, def.Name)
	}

	if err := s.deleteTolerant(def.Name.String()); err != nil {
		return err
	}
	if err := s.deleteTolerant(def.Name.Mirrored()); err != nil {
		return err
	}

	rig.SetSlot(domain.SlotState{Name: def.Name})
	return s.rigs.SaveRig(rig)
}

// Mirror creates the slot's twin joint across the dominant mirror plane.
func (s *Service) Mirror(slot domain.SlotName) (domain.SceneObject, error) {
	def, err := s.resolve(slot)
	if err != nil {
		return domain.SceneObject{}, err
	}
	if !def.Mirror {
		return domain.SceneObject{}, fmt.Errorf("%w: %s", ErrNotMirrorable, def.Name)
	}

	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return domain.SceneObject{}, err
	}
	st := rig.Slot(def.Name)
	if !st.Indicator || st.Position == nil {
		return domain.SceneObject{}, fmt.Errorf("%w: %s", ErrJointNotBuilt, def.Name)
	}
	if st.MirrorPosition != nil {
		return domain.SceneObject{}, fmt.Errorf("%w: %s", ErrAlreadyMirrored, def.Name)
	}

	mirrored, _, ok := geometry.Mirror(*st.Position)
	if !ok {
		return domain.SceneObject{}, fmt.Errorf("%w: %s at %s", ErrNoMirrorPlane, def.Name, st.Position)
	}

	obj, err := s.host.CreateObject(def.Name.Mirrored(), mirrored)
	if err != nil {
		return domain.SceneObject{}, err
	}
	st.MirrorPosition = &mirrored
	rig.SetSlot(st)
	if err := s.rigs.SaveRig(rig); err != nil {
		return domain.SceneObject{}, err
	}
	return obj, nil
}

// MirrorAll mirrors every placed, mirrorable slot that has no twin yet.
// Slots that are unplaced, already mirrored or sitting on the 45° line are
// skipped rather than failing the sweep.
func (s *Service) MirrorAll() ([]domain.SceneObject, error) {
	var made []domain.SceneObject
	for _, def := range s.tmpl.Slots {
		if !def.Mirror {
			continue
		}
		obj, err := s.Mirror(def.Name)
		switch {
		case err == nil:
			made = append(made, obj)
		case errors.Is(err, ErrJointNotBuilt),
			errors.Is(err, ErrAlreadyMirrored),
			errors.Is(err, ErrNoMirrorPlane):
			continue
		default:
			return made, err
		}
	}
	return made, nil
}

// Status reports the authoring state of every template slot plus the spine.
func (s *Service) Status() (domain.StatusReport, error) {
	info, err := s.host.Info()
	if err != nil {
		return domain.StatusReport{}, err
	}
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return domain.StatusReport{}, err
	}

	slots := make([]domain.SlotStatus, 0, len(s.tmpl.Slots))
	for _, def := range s.tmpl.Slots {
		st := rig.Slot(def.Name)
		slots = append(slots, domain.SlotStatus{
			Slot:      def.Name,
			Section:   def.Section,
			Indicator: st.Indicator,
			Mirrored:  st.MirrorPosition != nil,
			Position:  st.Position,
		})
	}
	return domain.StatusReport{
		Scene: info,
		Slots: slots,
		Spine: domain.SpineState{Count: rig.SpineCount(), Built: rig.Spine.Built},
	}, nil
}

func (s *Service) resolve(slot domain.SlotName) (domain.SlotDef, error) {
	def, ok := s.tmpl.FindSlot(slot.String())
	if !ok {
		return domain.SlotDef{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return def, nil
}

func (s *Service) deleteTolerant(name string) error {
	err := s.host.DeleteObject(name)
	if errors.Is(err, domain.ErrObjectNotFound) {
		return nil
	}
	return err
}

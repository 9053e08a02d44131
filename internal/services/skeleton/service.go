package skeleton

import (
	"autorig/internal/domain"
)

// Service parents placed joints into a skeleton and exports the hierarchy.
//
// Bone building is tolerant and idempotent: template pairs whose joints are
// not in the scene yet are skipped, and re-running after placing more joints
// only adds the new links. The spine chain is parented by rule rather than
// by the template: Spine_0 under the Pelvis, each joint under its
// predecessor, and the Neck and Shoulders under the last spine joint.
type Service struct {
	host domain.SceneHost
	rigs domain.RigStore
	tmpl domain.Template
}

var _ domain.SkeletonService = (*Service)(nil)

// New constructs a skeleton service for the given template.
func New(host domain.SceneHost, rigs domain.RigStore, tmpl domain.Template) *Service {
	return &Service{host: host, rigs: rigs, tmpl: tmpl}
}

// BuildBones links every buildable bone and reports how many links it made.
func (s *Service) BuildBones() (int, error) {
	rig, _, err := s.rigs.LoadRig()
	if err != nil {
		return 0, err
	}

	linked := 0
	link := func(child, parent string) error {
		ok, err := s.linkIfPresent(child, parent)
		if err != nil {
			return err
		}
		if ok {
			linked++
		}
		return nil
	}

	for _, b := range s.tmpl.Bones {
		if err := link(b.Child, b.Parent); err != nil {
			return linked, err
		}
	}

	if rig.Spine.Built {
		n := rig.SpineCount()
		if err := link(domain.SpineJointName(0), domain.SlotPelvis.String()); err != nil {
			return linked, err
		}
		for i := 1; i < n; i++ {
			if err := link(domain.SpineJointName(i), domain.SpineJointName(i-1)); err != nil {
				return linked, err
			}
		}
		top := domain.SpineJointName(n - 1)
		for _, name := range []string{
			domain.SlotNeck.String(),
			domain.SlotShoulder.String(),
			domain.SlotShoulder.Mirrored(),
		} {
			if err := link(name, top); err != nil {
				return linked, err
			}
		}
	}
	return linked, nil
}

// Export returns the joint hierarchy as a forest ordered by name.
func (s *Service) Export() (domain.Skeleton, error) {
	objs, err := s.host.Objects()
	if err != nil {
		return domain.Skeleton{}, err
	}

	nodes := make(map[string]*domain.SkeletonNode, len(objs))
	for _, o := range objs {
		nodes[o.Name] = &domain.SkeletonNode{Name: o.Name, Position: o.Position}
	}

	// objs is name-sorted, so children and roots come out ordered.
	var roots []*domain.SkeletonNode
	for _, o := range objs {
		n := nodes[o.Name]
		if p, ok := nodes[o.Parent]; ok {
			p.Children = append(p.Children, n)
			continue
		}
		roots = append(roots, n)
	}
	return domain.Skeleton{Roots: roots, JointCount: len(objs)}, nil
}

// linkIfPresent parents child under parent when both objects exist.
func (s *Service) linkIfPresent(child, parent string) (bool, error) {
	okChild, err := s.host.ObjectExists(child)
	if err != nil {
		return false, err
	}
	okParent, err := s.host.ObjectExists(parent)
	if err != nil {
		return false, err
	}
	if !okChild || !okParent {
		return false, nil
	}
	if err := s.host.SetParent(child, parent); err != nil {
		return false, err
	}
	return true, nil
}

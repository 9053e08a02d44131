package template

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"autorig/internal/domain"
)

// Sections of the default biped template.
const (
	SectionCenter = "Center"
	SectionArm    = "Arm"
	SectionFinger = "Finger"
	SectionLeg    = "Leg"
)

// Default returns the built-in biped template.
func Default() domain.Template {
	slots := []domain.SlotDef{
		{Name: "Pelvis", Section: SectionCenter, Doc: "Select the vertex loop around the hips; the pelvis joint anchors the whole rig."},
		{Name: "Neck", Section: SectionCenter, Doc: "Select the vertices at the base of the neck, just above the collarbones."},
		{Name: "Head", Section: SectionCenter, Doc: "Select the skull vertices; the head joint follows the neck."},

		{Name: "Shoulder", Section: SectionArm, Mirror: true, Doc: "Select the shoulder cap vertices on the character's left side."},
		{Name: "Elbow", Section: SectionArm, Mirror: true, Doc: "Select the vertex ring at the elbow crease."},
		{Name: "Wrist", Section: SectionArm, Mirror: true, Doc: "Select the vertex ring at the wrist; fingers chain off this joint."},
	}
	for _, finger := range []string{"Thumb", "Index_Finger", "Middle_Finger", "Ring_Finger", "Pinky_Finger"} {
		for _, seg := range []string{"Base", "Middle", "Distal", "Tip"} {
			slots = append(slots, domain.SlotDef{
				Name:    domain.SlotName(finger + "_" + seg),
				Section: SectionFinger,
				Mirror:  true,
				Doc:     fmt.Sprintf("Select the %s segment of the %s.", strings.ToLower(seg), strings.ReplaceAll(strings.ToLower(finger), "_", " ")),
			})
		}
	}
	slots = append(slots,
		domain.SlotDef{Name: "Hip", Section: SectionLeg, Mirror: true, Doc: "Select the hip socket vertices on the character's left side."},
		domain.SlotDef{Name: "Knee", Section: SectionLeg, Mirror: true, Doc: "Select the vertex ring at the knee."},
		domain.SlotDef{Name: "Ankle", Section: SectionLeg, Mirror: true, Doc: "Select the vertex ring at the ankle."},
		domain.SlotDef{Name: "Ball_Of_Foot", Section: SectionLeg, Mirror: true, Doc: "Select the vertices at the ball of the foot."},
		domain.SlotDef{Name: "Toes", Section: SectionLeg, Mirror: true, Doc: "Select the toe tip vertices."},
	)

	chains := [][]domain.SlotName{
		{"Pelvis", "Hip", "Knee", "Ankle", "Ball_Of_Foot", "Toes"},
		{"Neck", "Head"},
		{"Shoulder", "Elbow", "Wrist"},
	}
	for _, finger := range []domain.SlotName{"Thumb", "Index_Finger", "Middle_Finger", "Ring_Finger", "Pinky_Finger"} {
		chains = append(chains, []domain.SlotName{
			"Wrist", finger + "_Base", finger + "_Middle", finger + "_Distal", finger + "_Tip",
		})
	}

	return domain.Template{Name: "biped", Slots: slots, Bones: bonesFromChains(slots, chains)}
}

// bonesFromChains expands parent-to-child runs into bone pairs and derives
// the mirrored-side pairs: whenever the child slot mirrors, its twin is
// parented under the parent's twin, or under the parent itself when the
// parent is a center slot (Pelvis gets Mirrored_Hip).
func bonesFromChains(slots []domain.SlotDef, chains [][]domain.SlotName) []domain.BonePair {
	mirrors := make(map[domain.SlotName]bool, len(slots))
	for _, s := range slots {
		mirrors[s.Name] = s.Mirror
	}

	var pairs []domain.BonePair
	for _, chain := range chains {
		for i := 0; i+1 < len(chain); i++ {
			parent, child := chain[i], chain[i+1]
			pairs = append(pairs, domain.BonePair{Parent: parent.String(), Child: child.String()})
			if mirrors[child] {
				p := parent.String()
				if mirrors[parent] {
					p = parent.Mirrored()
				}
				pairs = append(pairs, domain.BonePair{Parent: p, Child: child.Mirrored()})
			}
		}
	}
	return pairs
}

// Load reads and validates a YAML template file.
func Load(path string) (domain.Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Template{}, err
	}
	var t domain.Template
	if err := yaml.Unmarshal(b, &t); err != nil {
		return domain.Template{}, fmt.Errorf("template %s: %w", path, err)
	}
	if err := Validate(t); err != nil {
		return domain.Template{}, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the template invariants:
//
//   - at least one slot, all names unique (case-insensitively)
//   - the Pelvis and Neck slots exist (the spine endpoints)
//   - bone pairs reference declared slots or their mirrored twins, never
//     spine joints (spine bones are implicit) and never themselves
func Validate(t domain.Template) error {
	if len(t.Slots) == 0 {
		return fmt.Errorf("template has no slots")
	}

	seen := make(map[string]bool, len(t.Slots))
	mirrors := make(map[domain.SlotName]bool, len(t.Slots))
	for _, s := range t.Slots {
		if s.Name == "" {
			return fmt.Errorf("slot with empty name")
		}
		key := strings.ToLower(s.Name.String())
		if seen[key] {
			return fmt.Errorf("duplicate slot %q", s.Name)
		}
		seen[key] = true
		mirrors[s.Name] = s.Mirror
	}
	for _, required := range []domain.SlotName{domain.SlotPelvis, domain.SlotNeck} {
		if !seen[strings.ToLower(required.String())] {
			return fmt.Errorf("missing required slot %q", required)
		}
	}

	valid := func(name string) bool {
		slot := name
		if rest, ok := strings.CutPrefix(name, domain.MirrorPrefix); ok {
			if !mirrors[domain.SlotName(rest)] {
				return false
			}
			slot = rest
		}
		return seen[strings.ToLower(slot)]
	}
	for _, b := range t.Bones {
		if b.Parent == b.Child {
			return fmt.Errorf("bone pair %q parents itself", b.Parent)
		}
		if domain.IsSpineJointName(b.Parent) || domain.IsSpineJointName(b.Child) {
			return fmt.Errorf("bone pair %s/%s names a spine joint; spine bones are implicit", b.Parent, b.Child)
		}
		if !valid(b.Parent) {
			return fmt.Errorf("bone pair references unknown parent %q", b.Parent)
		}
		if !valid(b.Child) {
			return fmt.Errorf("bone pair references unknown child %q", b.Child)
		}
	}
	return nil
}

package domain

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Vector3 is a 3D point or direction in scene world space.
type Vector3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// Vec3 returns a new Vector3 with the given components.
func Vec3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// MulScalar returns v scaled by s.
func (v Vector3) MulScalar(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// DivScalar returns v divided by s; the zero vector when s is zero.
func (v Vector3) DivScalar(s float32) Vector3 {
	if s == 0 {
		return Vector3{}
	}
	return v.MulScalar(1 / s)
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float32 { return v.Sub(o).Length() }

// String renders v as "(x, y, z)" for messages and logs.
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// SlotName identifies a rig slot from the skeleton template, e.g. "Pelvis".
// Slot names follow the template convention: capitalised words joined with
// underscores. The scene object created for a slot carries the same name.
type SlotName string

// String returns the string form of the slot name.
func (n SlotName) String() string { return string(n) }

// MirrorPrefix marks the scene object of a mirrored twin joint.
const MirrorPrefix = "Mirrored_"

// Mirrored returns the scene object name of the slot's mirrored twin.
func (n SlotName) Mirrored() string { return MirrorPrefix + string(n) }

// Spine joint naming and count bounds. The spine is a dynamic chain between
// the Pelvis and Neck slots; its joints are not template slots.
const (
	SpinePrefix       = "Spine_"
	DefaultSpineCount = 3
	MinSpineCount     = 1
)

// Spine count operations accepted by the host API.
const (
	SpineOpAdd    = "add"
	SpineOpRemove = "remove"
	SpineOpReset  = "reset"
	SpineOpSet    = "set"
)

// SpineJointName returns the scene object name of the i-th spine joint.
func SpineJointName(i int) string { return fmt.Sprintf("%s%d", SpinePrefix, i) }

// IsSpineJointName reports whether a scene object name belongs to the spine
// chain.
func IsSpineJointName(name string) bool { return strings.HasPrefix(name, SpinePrefix) }

// Well-known slots referenced by the spine and bone-building operations.
const (
	SlotPelvis   SlotName = "Pelvis"
	SlotNeck     SlotName = "Neck"
	SlotShoulder SlotName = "Shoulder"
)

// SceneObject is a named point object in the scene, the joint analog of a
// DCC host. Parent is the name of another scene object, or empty for a root.
type SceneObject struct {
	Name     string  `json:"name"`
	Position Vector3 `json:"position"`
	Parent   string  `json:"parent,omitempty"`
}

// Scene is the host-scene document: the loaded character mesh, the active
// vertex selection and every point object created so far.
type Scene struct {
	MeshName        string                 `json:"mesh_name"`
	MeshFingerprint string                 `json:"mesh_fingerprint"`
	Vertices        []Vector3              `json:"vertices"`
	Groups          map[string][]int       `json:"groups,omitempty"`
	Objects         map[string]SceneObject `json:"objects,omitempty"`
	Selection       []int                  `json:"selection,omitempty"`
}

// SceneInfo summarises a scene without its bulk data.
type SceneInfo struct {
	MeshName        string `json:"mesh_name"`
	MeshFingerprint string `json:"mesh_fingerprint"`
	VertexCount     int    `json:"vertex_count"`
	GroupCount      int    `json:"group_count"`
	ObjectCount     int    `json:"object_count"`
	SelectionSize   int    `json:"selection_size"`
}

// SlotState is the per-slot authoring record: the indicator light that gates
// creation and deletion, the placed position, and the mirrored twin position
// when one has been made.
type SlotState struct {
	Name           SlotName `json:"name"`
	Indicator      bool     `json:"indicator"`
	Position       *Vector3 `json:"position,omitempty"`
	MirrorPosition *Vector3 `json:"mirror_position,omitempty"`
	PlacedUTC      int64    `json:"placed_utc,omitempty"`
}

// SpineState holds the spine chain configuration. Count is the desired number
// of spine joints; Built reports whether the chain currently exists in the
// scene (the spine's own indicator light).
type SpineState struct {
	Count int  `json:"count"`
	Built bool `json:"built"`
}

// Rig is the authoring-state document for a project.
type Rig struct {
	Slots map[SlotName]SlotState `json:"slots,omitempty"`
	Spine SpineState             `json:"spine"`
}

// Slot returns the state for a slot, zero-valued when never touched.
func (r *Rig) Slot(name SlotName) SlotState {
	if st, ok := r.Slots[name]; ok {
		return st
	}
	return SlotState{Name: name}
}

// SetSlot stores the state for a slot, allocating the map on first use.
func (r *Rig) SetSlot(st SlotState) {
	if r.Slots == nil {
		r.Slots = make(map[SlotName]SlotState)
	}
	r.Slots[st.Name] = st
}

// SpineCount returns the configured spine joint count, applying the default
// when the document has never stored one.
func (r *Rig) SpineCount() int {
	if r.Spine.Count < MinSpineCount {
		return DefaultSpineCount
	}
	return r.Spine.Count
}

// Selection is the persisted record of the last authored vertex selection.
// MeshFingerprint pins it to the mesh revision it was made against so stale
// selections can be detected after a re-export.
type Selection struct {
	Indices         []int  `json:"indices"`
	MeshFingerprint string `json:"mesh_fingerprint"`
	SavedUTC        int64  `json:"saved_utc"`
}

// SlotDef declares one rig slot in a skeleton template.
type SlotDef struct {
	Name    SlotName `json:"name" yaml:"name"`
	Section string   `json:"section" yaml:"section"`
	Mirror  bool     `json:"mirror,omitempty" yaml:"mirror,omitempty"`
	Doc     string   `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// BonePair parents Child under Parent when bones are built. Names refer to
// scene objects, so mirrored twins appear with the Mirrored_ prefix.
type BonePair struct {
	Parent string `json:"parent" yaml:"parent"`
	Child  string `json:"child" yaml:"child"`
}

// Template is a skeleton template: the slots a rig offers and the bone pairs
// to parent once joints are placed. Spine bones are implicit and never listed.
type Template struct {
	Name  string     `json:"name" yaml:"name"`
	Slots []SlotDef  `json:"slots" yaml:"slots"`
	Bones []BonePair `json:"bones" yaml:"bones"`
}

// FindSlot resolves a slot by name, case-insensitively, returning the
// canonical definition.
func (t Template) FindSlot(name string) (SlotDef, bool) {
	for _, s := range t.Slots {
		if strings.EqualFold(string(s.Name), name) {
			return s, true
		}
	}
	return SlotDef{}, false
}

// SkeletonNode is one joint in an exported hierarchy.
type SkeletonNode struct {
	Name     string          `json:"name" yaml:"name"`
	Position Vector3         `json:"position" yaml:"position"`
	Children []*SkeletonNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Skeleton is the exported joint hierarchy: a forest ordered by name, plus
// the total joint count.
type Skeleton struct {
	Roots      []*SkeletonNode `json:"roots" yaml:"roots"`
	JointCount int             `json:"joint_count" yaml:"joint_count"`
}

// SlotStatus is one row of a status report.
type SlotStatus struct {
	Slot      SlotName `json:"slot"`
	Section   string   `json:"section"`
	Indicator bool     `json:"indicator"`
	Mirrored  bool     `json:"mirrored"`
	Position  *Vector3 `json:"position,omitempty"`
}

// StatusReport captures the authoring state of a whole project.
type StatusReport struct {
	Scene SceneInfo    `json:"scene"`
	Slots []SlotStatus `json:"slots"`
	Spine SpineState   `json:"spine"`
}

package domain

import "context"

// SceneStore persists the host-scene document.
type SceneStore interface {
	LoadScene() (Scene, bool, error)
	SaveScene(Scene) error
}

// RigStore persists the per-project rig authoring state.
type RigStore interface {
	LoadRig() (Rig, bool, error)
	SaveRig(Rig) error
}

// SelectionStore persists the last authored vertex selection.
type SelectionStore interface {
	LoadSelection() (Selection, bool, error)
	SaveSelection(Selection) error
	ClearSelection() error
}

// SceneHost is the host-application scene and selection API every rigging
// operation is mediated by: vertex selection queries, point-object creation,
// deletion and reparenting.
type SceneHost interface {
	// Mesh and metadata
	Info() (SceneInfo, error)
	MeshFingerprint() (string, error)

	// Active vertex selection
	CurrentSelection() ([]int, error)
	SetSelection(indices []int) ([]int, error)
	AddToSelection(indices []int) ([]int, error)
	SelectGroup(name string) ([]int, error)
	ClearSelection() error
	PointPositions(indices []int) ([]Vector3, error)

	// Point objects
	CreateObject(name string, pos Vector3) (SceneObject, error)
	DeleteObject(name string) error
	SetParent(child, parent string) error
	ObjectExists(name string) (bool, error)
	Object(name string) (SceneObject, bool, error)
	Objects() ([]SceneObject, error)
}

// SelectionService drives the active vertex selection and tracks staleness
// against the loaded mesh.
type SelectionService interface {
	Set(indices []int) (Selection, error)
	Add(indices []int) (Selection, error)
	SelectGroup(name string) (Selection, error)
	Clear() error
	Current() ([]int, []Vector3, error)
	Stale() (bool, error)
}

// JointService places, mirrors and deletes template-slot joints.
type JointService interface {
	Create(slot SlotName) (SceneObject, error)
	Delete(slot SlotName) error
	Mirror(slot SlotName) (SceneObject, error)
	MirrorAll() ([]SceneObject, error)
	Status() (StatusReport, error)
}

// SpineService manages the spine chain between the Pelvis and Neck joints.
type SpineService interface {
	Create() ([]SceneObject, error)
	Delete() error
	Add() (int, error)
	Remove() (int, error)
	Reset() (int, error)
	SetCount(n int) (int, error)
	Count() (int, error)
}

// SkeletonService parents placed joints into bones and exports the hierarchy.
type SkeletonService interface {
	BuildBones() (int, error)
	Export() (Skeleton, error)
}

// HostClient talks to a running rigd instance. It mirrors the service
// surface so the CLI can drive a shared project over HTTP.
type HostClient interface {
	Health(ctx context.Context) error
	SceneInfo(ctx context.Context) (SceneInfo, error)
	Status(ctx context.Context) (StatusReport, error)
	Skeleton(ctx context.Context) (Skeleton, error)
	SetSelection(ctx context.Context, indices []int, group string, add bool) (Selection, error)
	CurrentSelection(ctx context.Context) ([]int, []Vector3, error)
	ClearSelection(ctx context.Context) error
	CreateJoint(ctx context.Context, slot SlotName) (SceneObject, error)
	DeleteJoint(ctx context.Context, slot SlotName) error
	MirrorJoint(ctx context.Context, slot SlotName) (SceneObject, error)
	MirrorAllJoints(ctx context.Context) ([]SceneObject, error)
	BuildSpine(ctx context.Context) ([]SceneObject, error)
	DeleteSpine(ctx context.Context) error
	ChangeSpineCount(ctx context.Context, op string, count int) (int, error)
	BuildBones(ctx context.Context) (int, error)
}

package skeleton_test

import (
	"errors"
	"testing"

	"autorig/internal/domain"
	"autorig/internal/scene"
	"autorig/internal/services/skeleton"
	"autorig/internal/services/spine"
	"autorig/internal/store"
	"autorig/internal/template"
)

func setup(t *testing.T) (*skeleton.Service, *spine.Service, *scene.Service, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(t.TempDir())
	host := scene.New(fs)
	if err := host.LoadMesh("hero", "fp-1", []domain.Vector3{domain.Vec3(0, 0, 0)}, nil); err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	return skeleton.New(host, fs, template.Default()), spine.New(host, fs), host, fs
}

func placeSlot(t *testing.T, host *scene.Service, rigs domain.RigStore, slot domain.SlotName, at domain.Vector3) {
	t.Helper()
	if _, err := host.CreateObject(slot.String(), at); err != nil {
		t.Fatalf("CreateObject(%s): %v", slot, err)
	}
	rig, _, err := rigs.LoadRig()
	if err != nil {
		t.Fatalf("LoadRig: %v", err)
	}
	pos := at
	rig.SetSlot(domain.SlotState{Name: slot, Indicator: true, Position: &pos})
	if err := rigs.SaveRig(rig); err != nil {
		t.Fatalf("SaveRig: %v", err)
	}
}

func parentOf(t *testing.T, host *scene.Service, name string) string {
	t.Helper()
	obj, ok, err := host.Object(name)
	if err != nil || !ok {
		t.Fatalf("Object(%s): ok=%v err=%v", name, ok, err)
	}
	return obj.Parent
}

func TestBuildBonesSpineChain(t *testing.T) {
	sk, ss, host, fs := setup(t)
	placeSlot(t, host, fs, domain.SlotPelvis, domain.Vec3(0, 0, 0))
	placeSlot(t, host, fs, domain.SlotNeck, domain.Vec3(0, 8, 0))
	if _, err := ss.Create(); err != nil {
		t.Fatalf("spine create: %v", err)
	}

	if _, err := sk.BuildBones(); err != nil {
		t.Fatalf("BuildBones: %v", err)
	}

	if got := parentOf(t, host, "Spine_0"); got != "Pelvis" {
		t.Errorf("Spine_0 parent = %q", got)
	}
	if got := parentOf(t, host, "Spine_1"); got != "Spine_0" {
		t.Errorf("Spine_1 parent = %q", got)
	}
	if got := parentOf(t, host, "Spine_2"); got != "Spine_1" {
		t.Errorf("Spine_2 parent = %q", got)
	}
	if got := parentOf(t, host, "Neck"); got != "Spine_2" {
		t.Errorf("Neck parent = %q, want the top spine joint", got)
	}
	if got := parentOf(t, host, "Pelvis"); got != "" {
		t.Errorf("Pelvis parent = %q, want root", got)
	}
}

func TestBuildBonesTemplatePairsAndShoulders(t *testing.T) {
	sk, ss, host, fs := setup(t)
	placeSlot(t, host, fs, domain.SlotPelvis, domain.Vec3(0, 0, 0))
	placeSlot(t, host, fs, domain.SlotNeck, domain.Vec3(0, 8, 0))
	placeSlot(t, host, fs, domain.SlotShoulder, domain.Vec3(2, 7, 0))
	placeSlot(t, host, fs, "Elbow", domain.Vec3(3, 5, 0))
	placeSlot(t, host, fs, "Hip", domain.Vec3(1, -1, 0))
	if _, err := host.CreateObject("Mirrored_Shoulder", domain.Vec3(-2, 7, 0)); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	if _, err := ss.Create(); err != nil {
		t.Fatalf("spine create: %v", err)
	}

	linked, err := sk.BuildBones()
	if err != nil {
		t.Fatalf("BuildBones: %v", err)
	}
	if linked == 0 {
		t.Fatal("no bones linked")
	}

	if got := parentOf(t, host, "Elbow"); got != "Shoulder" {
		t.Errorf("Elbow parent = %q", got)
	}
	if got := parentOf(t, host, "Hip"); got != "Pelvis" {
		t.Errorf("Hip parent = %q", got)
	}
	if got := parentOf(t, host, "Shoulder"); got != "Spine_2" {
		t.Errorf("Shoulder parent = %q, want the top spine joint", got)
	}
	if got := parentOf(t, host, "Mirrored_Shoulder"); got != "Spine_2" {
		t.Errorf("Mirrored_Shoulder parent = %q, want the top spine joint", got)
	}
}

func TestBuildBonesWithNothingPlaced(t *testing.T) {
	sk, _, _, _ := setup(t)

	linked, err := sk.BuildBones()
	if err != nil {
		t.Fatalf("BuildBones: %v", err)
	}
	if linked != 0 {
		t.Fatalf("linked = %d, want 0", linked)
	}
}

func TestBuildBonesIdempotent(t *testing.T) {
	sk, ss, host, fs := setup(t)
	placeSlot(t, host, fs, domain.SlotPelvis, domain.Vec3(0, 0, 0))
	placeSlot(t, host, fs, domain.SlotNeck, domain.Vec3(0, 8, 0))
	if _, err := ss.Create(); err != nil {
		t.Fatalf("spine create: %v", err)
	}

	first, err := sk.BuildBones()
	if err != nil {
		t.Fatalf("first BuildBones: %v", err)
	}
	second, err := sk.BuildBones()
	if err != nil {
		t.Fatalf("second BuildBones: %v", err)
	}
	if first != second {
		t.Fatalf("link counts differ across runs: %d then %d", first, second)
	}
	if got := parentOf(t, host, "Neck"); got != "Spine_2" {
		t.Errorf("Neck parent = %q after rerun", got)
	}
}

func TestExportForest(t *testing.T) {
	sk, ss, host, fs := setup(t)
	placeSlot(t, host, fs, domain.SlotPelvis, domain.Vec3(0, 0, 0))
	placeSlot(t, host, fs, domain.SlotNeck, domain.Vec3(0, 8, 0))
	placeSlot(t, host, fs, "Head", domain.Vec3(0, 9, 0))
	if _, err := ss.Create(); err != nil {
		t.Fatalf("spine create: %v", err)
	}
	if _, err := sk.BuildBones(); err != nil {
		t.Fatalf("BuildBones: %v", err)
	}

	skel, err := sk.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// Pelvis, Neck, Head and three spine joints.
	if skel.JointCount != 6 {
		t.Fatalf("JointCount = %d, want 6", skel.JointCount)
	}
	if len(skel.Roots) != 1 || skel.Roots[0].Name != "Pelvis" {
		t.Fatalf("roots = %+v, want the single Pelvis root", skel.Roots)
	}

	// Follow Pelvis -> Spine_0 -> Spine_1 -> Spine_2 -> Neck -> Head.
	node := skel.Roots[0]
	for _, want := range []string{"Spine_0", "Spine_1", "Spine_2", "Neck", "Head"} {
		if len(node.Children) != 1 {
			t.Fatalf("%s has %d children, want 1", node.Name, len(node.Children))
		}
		node = node.Children[0]
		if node.Name != want {
			t.Fatalf("walked to %q, want %q", node.Name, want)
		}
	}
	if len(node.Children) != 0 {
		t.Fatalf("Head has children: %+v", node.Children)
	}
}

func TestExportUnlinkedIsFlat(t *testing.T) {
	sk, _, host, fs := setup(t)
	placeSlot(t, host, fs, domain.SlotPelvis, domain.Vec3(0, 0, 0))
	placeSlot(t, host, fs, domain.SlotNeck, domain.Vec3(0, 8, 0))

	skel, err := sk.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if skel.JointCount != 2 || len(skel.Roots) != 2 {
		t.Fatalf("skeleton = %+v, want two roots", skel)
	}
	if skel.Roots[0].Name != "Neck" || skel.Roots[1].Name != "Pelvis" {
		t.Fatalf("roots out of order: %+v", skel.Roots)
	}
}

func TestExportNoScene(t *testing.T) {
	fs := store.NewFileStore(t.TempDir())
	sk := skeleton.New(scene.New(fs), fs, template.Default())

	if _, err := sk.Export(); !errors.Is(err, domain.ErrNoScene) {
		t.Fatalf("err = %v, want ErrNoScene", err)
	}
}

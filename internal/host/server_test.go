package host_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"autorig/internal/domain"
	"autorig/internal/host"
	"autorig/internal/scene"
	"autorig/internal/services/joint"
	"autorig/internal/services/selection"
	"autorig/internal/services/skeleton"
	"autorig/internal/services/spine"
	"autorig/internal/store"
	"autorig/internal/template"
)

func newTestServer(t *testing.T) (*httptest.Server, *scene.Service) {
	t.Helper()
	fs := store.NewFileStore(t.TempDir())
	sceneSvc := scene.New(fs)
	tmpl := template.Default()
	svc := host.Services{
		Scene:     sceneSvc,
		Selection: selection.New(sceneSvc, fs),
		Joints:    joint.New(sceneSvc, fs, tmpl),
		Spine:     spine.New(sceneSvc, fs),
		Skeleton:  skeleton.New(sceneSvc, fs, tmpl),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(host.NewServer(svc, log))
	t.Cleanup(ts.Close)
	return ts, sceneSvc
}

func loadMesh(t *testing.T, sceneSvc *scene.Service) {
	t.Helper()
	verts := []domain.Vector3{
		domain.Vec3(-1, 0, 0), // 0
		domain.Vec3(1, 0, 0),  // 1: pelvis pair, centroid at the origin
		domain.Vec3(0, 8, 0),  // 2: neck
		domain.Vec3(4, 6, 1),  // 3
		domain.Vec3(6, 6, 1),  // 4: shoulder pair, centroid (5, 6, 1)
	}
	if err := sceneSvc.LoadMesh("hero", "fp-1", verts, map[string][]int{"hips": {0, 1}}); err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	c := host.NewClient(ts.URL)

	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestFullRigFlowOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	// Pelvis from an explicit selection.
	if _, err := c.SetSelection(ctx, []int{0, 1}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	pelvis, err := c.CreateJoint(ctx, "Pelvis")
	if err != nil {
		t.Fatalf("CreateJoint: %v", err)
	}
	if pelvis.Position != domain.Vec3(0, 0, 0) {
		t.Errorf("pelvis at %v", pelvis.Position)
	}

	// Neck from a single vertex.
	if _, err := c.SetSelection(ctx, []int{2}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if _, err := c.CreateJoint(ctx, "Neck"); err != nil {
		t.Fatalf("CreateJoint(Neck): %v", err)
	}

	// Shoulder, mirrored.
	if _, err := c.SetSelection(ctx, []int{3, 4}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if _, err := c.CreateJoint(ctx, "Shoulder"); err != nil {
		t.Fatalf("CreateJoint(Shoulder): %v", err)
	}
	twin, err := c.MirrorJoint(ctx, "Shoulder")
	if err != nil {
		t.Fatalf("MirrorJoint: %v", err)
	}
	if twin.Name != "Mirrored_Shoulder" || twin.Position != domain.Vec3(-5, 6, 1) {
		t.Errorf("twin = %+v", twin)
	}

	// Spine: default chain, then grow and reset.
	objs, err := c.BuildSpine(ctx)
	if err != nil {
		t.Fatalf("BuildSpine: %v", err)
	}
	if len(objs) != domain.DefaultSpineCount {
		t.Fatalf("built %d spine joints", len(objs))
	}
	if n, err := c.ChangeSpineCount(ctx, domain.SpineOpAdd, 0); err != nil || n != 4 {
		t.Fatalf("add: n=%d err=%v", n, err)
	}
	if n, err := c.ChangeSpineCount(ctx, domain.SpineOpReset, 0); err != nil || n != 3 {
		t.Fatalf("reset: n=%d err=%v", n, err)
	}

	linked, err := c.BuildBones(ctx)
	if err != nil {
		t.Fatalf("BuildBones: %v", err)
	}
	if linked == 0 {
		t.Fatal("no bones linked")
	}

	rep, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !rep.Spine.Built || rep.Spine.Count != 3 {
		t.Errorf("spine status = %+v", rep.Spine)
	}

	skel, err := c.Skeleton(ctx)
	if err != nil {
		t.Fatalf("Skeleton: %v", err)
	}
	// Pelvis, Neck, Shoulder, Mirrored_Shoulder and three spine joints.
	if skel.JointCount != 7 {
		t.Errorf("JointCount = %d, want 7", skel.JointCount)
	}
	if len(skel.Roots) != 1 || skel.Roots[0].Name != "Pelvis" {
		t.Errorf("roots = %+v", skel.Roots)
	}
}

func TestSelectionByGroupOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)

	sel, err := c.SetSelection(context.Background(), nil, "hips", false)
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if len(sel.Indices) != 2 {
		t.Fatalf("indices = %v", sel.Indices)
	}

	idx, pts, err := c.CurrentSelection(context.Background())
	if err != nil {
		t.Fatalf("CurrentSelection: %v", err)
	}
	if len(idx) != 2 || len(pts) != 2 {
		t.Fatalf("current selection = %v / %v", idx, pts)
	}

	if err := c.ClearSelection(context.Background()); err != nil {
		t.Fatalf("ClearSelection: %v", err)
	}
}

func TestMirrorAllOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	if _, err := c.SetSelection(ctx, []int{3, 4}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if _, err := c.CreateJoint(ctx, "Shoulder"); err != nil {
		t.Fatalf("CreateJoint: %v", err)
	}

	twins, err := c.MirrorAllJoints(ctx)
	if err != nil {
		t.Fatalf("MirrorAllJoints: %v", err)
	}
	if len(twins) != 1 || twins[0].Name != "Mirrored_Shoulder" {
		t.Fatalf("twins = %+v", twins)
	}
}

func TestDeleteJointOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	if _, err := c.SetSelection(ctx, []int{0, 1}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if _, err := c.CreateJoint(ctx, "Pelvis"); err != nil {
		t.Fatalf("CreateJoint: %v", err)
	}
	if err := c.DeleteJoint(ctx, "Pelvis"); err != nil {
		t.Fatalf("DeleteJoint: %v", err)
	}
	if ok, _ := sceneSvc.ObjectExists("Pelvis"); ok {
		t.Fatal("Pelvis still in scene")
	}
}

func TestParallelJointCreatesOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	if _, err := c.SetSelection(ctx, []int{0, 1}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}

	// Fire the creates together so their load-save pairs overlap.
	slots := []domain.SlotName{"Pelvis", "Neck", "Head", "Shoulder"}
	start := make(chan struct{})
	errs := make(chan error, len(slots))
	var wg sync.WaitGroup
	for _, slot := range slots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := c.CreateJoint(ctx, slot)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("CreateJoint: %v", err)
		}
	}

	// A create that succeeded must have landed whole: scene object present
	// and indicator on.
	rep, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	indicator := make(map[domain.SlotName]bool)
	for _, row := range rep.Slots {
		indicator[row.Slot] = row.Indicator
	}
	for _, slot := range slots {
		if ok, err := sceneSvc.ObjectExists(string(slot)); err != nil || !ok {
			t.Errorf("%s scene object missing (err=%v)", slot, err)
		}
		if !indicator[slot] {
			t.Errorf("%s created but its indicator is off", slot)
		}
	}
}

func TestParallelSpineAddsOverHTTP(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	// Adds are count bookkeeping while the spine is unbuilt; none may be
	// lost to a concurrent request.
	const adds = 16
	start := make(chan struct{})
	errs := make(chan error, adds)
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := c.ChangeSpineCount(ctx, domain.SpineOpAdd, 0)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	rep, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if want := domain.DefaultSpineCount + adds; rep.Spine.Count != want {
		t.Fatalf("count = %d after %d parallel adds, want %d", rep.Spine.Count, adds, want)
	}
}

func doReq(t *testing.T, ts *httptest.Server, method, path, body string) int {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rdr)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func TestStatusCodesWithoutScene(t *testing.T) {
	ts, _ := newTestServer(t)

	if got := doReq(t, ts, http.MethodGet, "/v1/scene", ""); got != http.StatusNotFound {
		t.Errorf("GET /v1/scene = %d, want 404", got)
	}
	if got := doReq(t, ts, http.MethodPost, "/v1/joints", `{"slot":"Pelvis"}`); got != http.StatusNotFound {
		t.Errorf("POST /v1/joints = %d, want 404", got)
	}
}

func TestStatusCodes(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown slot", http.MethodPost, "/v1/joints", `{"slot":"Tail"}`, http.StatusNotFound},
		{"empty selection", http.MethodPost, "/v1/joints", `{"slot":"Pelvis"}`, http.StatusUnprocessableEntity},
		{"spine without endpoints", http.MethodPost, "/v1/spine", "", http.StatusUnprocessableEntity},
		{"delete unbuilt spine", http.MethodDelete, "/v1/spine", "", http.StatusNotFound},
		{"bogus count op", http.MethodPost, "/v1/spine/count", `{"op":"grow"}`, http.StatusBadRequest},
		{"selection out of range", http.MethodPut, "/v1/selection", `{"indices":[99]}`, http.StatusUnprocessableEntity},
		{"garbage body", http.MethodPut, "/v1/selection", `{"indices":`, http.StatusBadRequest},
		{"delete unplaced joint", http.MethodDelete, "/v1/joints/Neck", "", http.StatusUnprocessableEntity},
		{"count below minimum", http.MethodPost, "/v1/spine/count", `{"op":"set","count":0}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := doReq(t, ts, tc.method, tc.path, tc.body); got != tc.want {
				t.Errorf("%s %s = %d, want %d", tc.method, tc.path, got, tc.want)
			}
		})
	}
}

func TestCreateJointConflict(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)
	ctx := context.Background()

	if _, err := c.SetSelection(ctx, []int{0, 1}, "", false); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if _, err := c.CreateJoint(ctx, "Pelvis"); err != nil {
		t.Fatalf("CreateJoint: %v", err)
	}

	if got := doReq(t, ts, http.MethodPost, "/v1/joints", `{"slot":"Pelvis"}`); got != http.StatusConflict {
		t.Errorf("second create = %d, want 409", got)
	}
}

func TestClientErrorCarriesMessage(t *testing.T) {
	ts, sceneSvc := newTestServer(t)
	loadMesh(t, sceneSvc)
	c := host.NewClient(ts.URL)

	_, err := c.CreateJoint(context.Background(), "Pelvis")
	if err == nil {
		t.Fatal("expected an error with nothing selected")
	}
	if !strings.Contains(err.Error(), "nothing selected") {
		t.Fatalf("error %q does not carry the service message", err)
	}
}

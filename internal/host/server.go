package host

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"autorig/internal/domain"
	"autorig/internal/services/joint"
	"autorig/internal/services/spine"
)

// Services are the rigging services the server exposes.
type Services struct {
	Scene     domain.SceneHost
	Selection domain.SelectionService
	Joints    domain.JointService
	Spine     domain.SpineService
	Skeleton  domain.SkeletonService
}

// Server serves the project API under /v1.
type Server struct {
	svc Services
	log *slog.Logger
	r   chi.Router

	// mu serialises handlers. Every rig operation loads and resaves the
	// shared project documents, so concurrent writers would lose updates.
	mu sync.RWMutex
}

// NewServer builds the router around the given services.
func NewServer(svc Services, log *slog.Logger) *Server {
	s := &Server{svc: svc, log: log}
	s.r = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.readLocked)
			r.Get("/scene", s.handleScene)
			r.Get("/status", s.handleStatus)
			r.Get("/skeleton", s.handleSkeleton)
			r.Get("/selection", s.handleGetSelection)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.writeLocked)
			r.Put("/selection", s.handlePutSelection)
			r.Delete("/selection", s.handleClearSelection)

			r.Post("/joints", s.handleCreateJoint)
			r.Post("/joints/mirror", s.handleMirrorAll)
			r.Delete("/joints/{slot}", s.handleDeleteJoint)
			r.Post("/joints/{slot}/mirror", s.handleMirrorJoint)

			r.Post("/spine", s.handleBuildSpine)
			r.Delete("/spine", s.handleDeleteSpine)
			r.Post("/spine/count", s.handleSpineCount)

			r.Post("/bones", s.handleBuildBones)
		})
	})
	return r
}

// readLocked and writeLocked run handlers under mu: mutating routes get the
// lock to themselves, read routes share it.
func (s *Server) readLocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeLocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Wire bodies shared by the server and client.
type (
	selectionRequest struct {
		Indices []int  `json:"indices,omitempty"`
		Group   string `json:"group,omitempty"`
		Add     bool   `json:"add,omitempty"`
	}
	selectionView struct {
		Indices   []int            `json:"indices"`
		Positions []domain.Vector3 `json:"positions"`
	}
	jointRequest struct {
		Slot string `json:"slot"`
	}
	countRequest struct {
		Op    string `json:"op"`
		Count int    `json:"count,omitempty"`
	}
	countResponse struct {
		Count int `json:"count"`
	}
	linkedResponse struct {
		Linked int `json:"linked"`
	}
	errorResponse struct {
		Error string `json:"error"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Scene.Info()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.Joints.Status()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSkeleton(w http.ResponseWriter, r *http.Request) {
	skel, err := s.svc.Skeleton.Export()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skel)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	idx, pts, err := s.svc.Selection.Current()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionView{Indices: idx, Positions: pts})
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	var (
		sel domain.Selection
		err error
	)
	switch {
	case req.Group != "":
		sel, err = s.svc.Selection.SelectGroup(req.Group)
	case req.Add:
		sel, err = s.svc.Selection.Add(req.Indices)
	default:
		sel, err = s.svc.Selection.Set(req.Indices)
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Selection.Clear(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateJoint(w http.ResponseWriter, r *http.Request) {
	var req jointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	obj, err := s.svc.Joints.Create(domain.SlotName(req.Slot))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}

func (s *Server) handleDeleteJoint(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Joints.Delete(domain.SlotName(chi.URLParam(r, "slot"))); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMirrorJoint(w http.ResponseWriter, r *http.Request) {
	obj, err := s.svc.Joints.Mirror(domain.SlotName(chi.URLParam(r, "slot")))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}

func (s *Server) handleMirrorAll(w http.ResponseWriter, r *http.Request) {
	objs, err := s.svc.Joints.MirrorAll()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, objs)
}

func (s *Server) handleBuildSpine(w http.ResponseWriter, r *http.Request) {
	objs, err := s.svc.Spine.Create()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, objs)
}

func (s *Server) handleDeleteSpine(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Spine.Delete(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSpineCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	var (
		n   int
		err error
	)
	switch req.Op {
	case domain.SpineOpAdd:
		n, err = s.svc.Spine.Add()
	case domain.SpineOpRemove:
		n, err = s.svc.Spine.Remove()
	case domain.SpineOpReset:
		n, err = s.svc.Spine.Reset()
	case domain.SpineOpSet:
		n, err = s.svc.Spine.SetCount(req.Count)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown op " + req.Op})
		return
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func (s *Server) handleBuildBones(w http.ResponseWriter, r *http.Request) {
	linked, err := s.svc.Skeleton.BuildBones()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkedResponse{Linked: linked})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps service failures onto API statuses: missing things are 404,
// name and build collisions are 409, and requests the rig state cannot
// satisfy are 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoScene),
		errors.Is(err, domain.ErrObjectNotFound),
		errors.Is(err, domain.ErrUnknownGroup),
		errors.Is(err, joint.ErrUnknownSlot),
		errors.Is(err, spine.ErrNoSpine):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrObjectExists),
		errors.Is(err, joint.ErrJointExists),
		errors.Is(err, joint.ErrAlreadyMirrored),
		errors.Is(err, spine.ErrSpineExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrVertexRange),
		errors.Is(err, domain.ErrEmptyMesh),
		errors.Is(err, domain.ErrParentCycle),
		errors.Is(err, joint.ErrEmptySelection),
		errors.Is(err, joint.ErrNotMirrorable),
		errors.Is(err, joint.ErrNoMirrorPlane),
		errors.Is(err, joint.ErrJointNotBuilt),
		errors.Is(err, spine.ErrEndpointsMissing),
		errors.Is(err, spine.ErrMinSpineCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Package server exposes the routing pipeline over HTTP.
//
// Routes:
//
//	POST /v1/route?format=json|geometry|svg   body: pin spec text
//	POST /v1/check                            body: {"pins": "...", "routing": "..."}
//	GET  /healthz
//
// Errors are returned as {"code": "...", "message": "..."} with status 400
// for bad input and 500 otherwise. Every response carries an X-Request-ID.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
	pkgio "github.com/matzehuels/chanroute/pkg/io"
	"github.com/matzehuels/chanroute/pkg/observability"
	"github.com/matzehuels/chanroute/pkg/pipeline"
)

const (
	maxBody         = 16 << 20
	requestIDHeader = "X-Request-ID"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatGeometry: "text/plain; charset=utf-8",
	pipeline.FormatSVG:      "image/svg+xml",
}

// Server serves the HTTP API. Defaults holds the route and render options
// applied to every request.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

// New creates a server around runner. Unset geometry in defaults is filled
// in once here, so every handler sees the spacing requests are routed with.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if defaults.Logger == nil {
		defaults.Logger = logger
	}
	if err := defaults.ValidateForRoute(); err != nil {
		logger.Warn("invalid default geometry, requests will fail", "err", err)
	}
	return &Server{runner: runner, logger: logger, defaults: defaults}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/route", s.handleRoute)
		r.Post("/check", s.handleCheck)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if _, ok := contentTypes[format]; !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"unsupported format %q (must be one of: json, geometry, svg)", format))
		return
	}

	ch, err := pipeline.Parse(r.Context(), http.MaxBytesReader(w, r.Body, maxBody), "request")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.defaults
	opts.Formats = []string{format}
	result, err := s.runner.Execute(r.Context(), ch, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Pin-Count", strconv.Itoa(result.Stats.Columns))
	h.Set("X-Track-Count", strconv.Itoa(result.Stats.Tracks))
	w.Write(result.Artifacts[format])
}

type checkRequest struct {
	Pins    string `json:"pins"`
	Routing string `json:"routing,omitempty"`
}

type checkResponse struct {
	OK         bool            `json:"ok"`
	Nets       int             `json:"nets"`
	Wires      int             `json:"wires"`
	Tracks     int             `json:"tracks"`
	Violations []violationJSON `json:"violations"`
}

type violationJSON struct {
	Kind   channel.ViolationKind `json:"kind"`
	Net    channel.Net           `json:"net"`
	Other  *channel.Net          `json:"other,omitempty"`
	Detail string                `json:"detail"`
}

// handleCheck verifies a supplied routing against its pins, or routes the
// pins and verifies the result when no routing is given.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	ctx := r.Context()
	ch, err := pipeline.Parse(ctx, strings.NewReader(req.Pins), "request")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var plan *channel.Plan
	if req.Routing != "" {
		nets, err := pkgio.ReadGeometry(strings.NewReader(req.Routing))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		plan = channel.FromWires(ch, s.defaults.Geometry(), nets)
	} else if plan, err = s.runner.Route(ctx, ch, s.defaults); err != nil {
		s.writeError(w, r, err)
		return
	}

	report := channel.Check(plan, ch)
	resp := checkResponse{
		OK:         report.OK(),
		Nets:       report.Nets,
		Wires:      report.Wires,
		Tracks:     plan.TrackCount(),
		Violations: make([]violationJSON, 0, len(report.Violations)),
	}
	for _, v := range report.Violations {
		vj := violationJSON{Kind: v.Kind, Net: v.Net, Detail: v.Detail}
		if v.Kind == channel.Overlap {
			other := v.Other
			vj.Other = &other
		}
		resp.Violations = append(resp.Violations, vj)
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	if errors.IsInput(err) {
		status = http.StatusBadRequest
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type ctxKey struct{}

// RequestID returns the request id assigned by the server, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID keeps a client supplied X-Request-ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

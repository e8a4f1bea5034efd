// Package api exposes a timer engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"pomodoro/internal/core/timer"
)

const (
	maxBodyBytes = 1 << 10
	eventBuffer  = 64
)

// Controller is the engine surface served by the API.
type Controller interface {
	ID() string
	Snapshot() timer.State
	Start()
	Pause()
	Resume()
	Stop()
	Reset()
	SkipBreak()
	TakeBreak()
	TakeBreakFor(seconds int)
	Events(buffer int) (<-chan timer.Event, func())
}

// StateResponse is the body of state and command responses.
type StateResponse struct {
	Instance              string `json:"instance"`
	Phase                 string `json:"phase"`
	Kind                  string `json:"kind"`
	RemainingSeconds      int    `json:"remaining_seconds"`
	Clock                 string `json:"clock"`
	BreakDeficit          int    `json:"break_deficit"`
	CompletedWorkSessions int    `json:"completed_work_sessions"`
	Paused                bool   `json:"paused"`
}

// TakeBreakRequest is the optional body of the take-break command.
type TakeBreakRequest struct {
	Seconds *int `json:"seconds"`
}

var errBadBody = errors.New("invalid request body")

// Handler serves the control surface.
type Handler struct {
	engine   Controller
	logger   zerolog.Logger
	commands map[string]func(*http.Request) error
}

// NewHandler creates a Handler for engine.
func NewHandler(engine Controller, logger zerolog.Logger) *Handler {
	h := &Handler{
		engine: engine,
		logger: logger.With().Str("component", "api").Logger(),
	}
	h.commands = map[string]func(*http.Request) error{
		"start":      simple(engine.Start),
		"pause":      simple(engine.Pause),
		"resume":     simple(engine.Resume),
		"stop":       simple(engine.Stop),
		"reset":      simple(engine.Reset),
		"skip-break": simple(engine.SkipBreak),
		"take-break": h.takeBreak,
	}
	return h
}

// NewRouter builds the chi router. A nil gatherer disables /metrics.
func NewRouter(engine Controller, gatherer prometheus.Gatherer, logger zerolog.Logger) http.Handler {
	h := NewHandler(engine, logger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(h.logger))
	r.Get("/healthz", h.Healthz)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Post("/commands/{command}", h.Command)
		r.Get("/events", h.Events)
	})
	return r
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// State handles GET /api/v1/state.
func (h *Handler) State(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stateResponse())
}

// Command handles POST /api/v1/commands/{command}.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "command")
	run, ok := h.commands[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown command %q", name))
		return
	}

	if err := run(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info().Str("command", name).Msg("command applied")
	writeJSON(w, http.StatusOK, h.stateResponse())
}

// Events handles GET /api/v1/events as a server-sent event stream.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.engine.Events(eventBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Msg("encode event")
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) takeBreak(r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errBadBody
	}
	if len(body) == 0 {
		h.engine.TakeBreak()
		return nil
	}

	var req TakeBreakRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errBadBody
	}
	if req.Seconds == nil {
		h.engine.TakeBreak()
		return nil
	}
	h.engine.TakeBreakFor(*req.Seconds)
	return nil
}

func (h *Handler) stateResponse() StateResponse {
	return NewStateResponse(h.engine.ID(), h.engine.Snapshot())
}

// NewStateResponse converts a snapshot to its wire form.
func NewStateResponse(instance string, state timer.State) StateResponse {
	return StateResponse{
		Instance:              instance,
		Phase:                 string(state.Phase),
		Kind:                  string(state.Kind()),
		RemainingSeconds:      state.RemainingSeconds,
		Clock:                 state.Clock(),
		BreakDeficit:          state.BreakDeficit,
		CompletedWorkSessions: state.CompletedWorkSessions,
		Paused:                state.Paused,
	}
}

func simple(command func()) func(*http.Request) error {
	return func(*http.Request) error {
		command()
		return nil
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

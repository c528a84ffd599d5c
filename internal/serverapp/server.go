// Package serverapp assembles the HTTP surface of the tracker: repositories,
// derived views, the inline-edit controller, and operational endpoints, all
// behind the shared middleware chain.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/assignment"
	"github.com/ThamannaGM/Assignment-Tracker/internal/calendar"
	"github.com/ThamannaGM/Assignment-Tracker/internal/config"
	"github.com/ThamannaGM/Assignment-Tracker/internal/editor"
	"github.com/ThamannaGM/Assignment-Tracker/internal/httpmw"
	"github.com/ThamannaGM/Assignment-Tracker/internal/server"
	"github.com/ThamannaGM/Assignment-Tracker/internal/subject"
	"github.com/ThamannaGM/Assignment-Tracker/internal/telemetry"
	"github.com/ThamannaGM/Assignment-Tracker/internal/view"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Logger  *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Storage.DataDir
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	events := telemetry.NewMemoryRepository()

	subjectRepo, err := subject.NewFileRepo(opts.DataDir, opts.Config.Subjects.Palette)
	if err != nil {
		return nil, err
	}
	assignmentRepo, err := assignment.NewFileRepo(opts.DataDir, subjectRepo)
	if err != nil {
		return nil, err
	}

	viewEngine := view.NewEngine(opts.Config.Assignments.SpecialKeywords, opts.Config.Assignments.DueSoonDays)
	calendarEngine := calendar.NewEngine(viewEngine.Special)
	editCtrl := editor.NewController(assignmentRepo)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	subjectHandler := subject.NewHandler(subjectRepo)
	subjectHandler.SetRecorder(events)
	server.Handle(mux, rr, "GET POST", "/api/subjects", "list subjects / create a subject",
		`{"name":"Math","color":"#B58463"}`, subjectHandler.Root)
	server.Handle(mux, rr, "GET DELETE", "/api/subjects/", "get or remove a subject; /palette lists color usage", "", subjectHandler.Sub)

	assignmentHandler := assignment.NewHandler(assignmentRepo)
	assignmentHandler.SetRecorder(events)
	server.Handle(mux, rr, "GET POST DELETE", "/api/assignments", "list, create, or clear assignments",
		`{"subject":"Math","name":"Problem set 1","dueDate":"2026-04-01"}`, assignmentHandler.Root)
	server.Handle(mux, rr, "GET PATCH DELETE", "/api/assignments/", "get, patch, or remove one assignment; /calendar.ics exports it", "", assignmentHandler.Sub)

	viewHandler := view.NewHandler(viewEngine, assignmentRepo)
	server.Handle(mux, rr, "GET", "/api/table", "filtered table rows with urgency annotations", "", viewHandler.Table)

	calendarHandler := calendar.NewHandler(calendarEngine, assignmentRepo)
	server.Handle(mux, rr, "GET", "/api/calendar/month", "weekday-aligned month grid", "", calendarHandler.Month)
	server.Handle(mux, rr, "GET", "/api/calendar/week", "7-day strip from the enclosing Sunday", "", calendarHandler.Week)

	editHandler := editor.NewHandler(editCtrl)
	editHandler.SetRecorder(events)
	server.Handle(mux, rr, "POST", "/api/edit/begin", "open an inline-edit session",
		`{"assignment":"asg_...","field":"status"}`, editHandler.Begin)
	server.Handle(mux, rr, "POST", "/api/edit/commit", "commit an inline-edit session",
		`{"assignment":"asg_...","field":"status","value":"Completed"}`, editHandler.Commit)
	server.Handle(mux, rr, "POST", "/api/edit/cancel", "cancel an inline-edit session",
		`{"assignment":"asg_...","field":"status"}`, editHandler.Cancel)

	eventHandler := telemetry.NewHandler(events)
	server.Handle(mux, rr, "GET", "/api/events", "session event log for presentation effects", "", eventHandler.Events)

	server.RegisterDocs(mux, rr)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "assignment-tracker",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := subjectRepo.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "subject storage unavailable",
			})
			return
		}
		if _, err := assignmentRepo.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "assignment storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "assignment-tracker",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

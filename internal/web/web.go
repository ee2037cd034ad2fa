package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"tussenuur/internal/campus"
	"tussenuur/internal/config"
	"tussenuur/internal/health"
	"tussenuur/internal/ics"
	appLog "tussenuur/internal/log"
	"tussenuur/internal/metrics"
	"tussenuur/internal/timetable"
)

//go:embed templates
var embeddedTemplates embed.FS

// maxUploadBytes bounds uploaded timetable files; real exports are a few
// hundred kilobytes at most.
const maxUploadBytes = 2 << 20

// sourceHealth is the slice of health.Prober the server needs.
type sourceHealth interface {
	Last() health.Status
}

// Server wires the HTTP surface: the search form, the find flow over the
// scraped timetable, the upload flow over ICS exports, and the operational
// endpoints.
type Server struct {
	cfg       *config.Config
	locations *campus.Set
	schedules timetable.SlotSource
	prober    sourceHealth

	tz  *time.Location
	mux *http.ServeMux
	tpl *template.Template

	// now is injectable for tests; defaults to time.Now in the campus
	// timezone.
	now func() time.Time
}

// NewServer constructs a Server around already-initialized collaborators.
func NewServer(cfg *config.Config, locations *campus.Set, schedules timetable.SlotSource, prober sourceHealth) (*Server, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", cfg.Timezone)
		tz = time.Local
	}

	tpl, err := template.ParseFS(embeddedTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		locations: locations,
		schedules: schedules,
		prober:    prober,
		tz:        tz,
		mux:       http.NewServeMux(),
		tpl:       tpl,
	}
	s.now = func() time.Time { return time.Now().In(s.tz) }
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /find", s.handleFind)
	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("POST /api/upload", s.handleAPIUpload)
	s.mux.HandleFunc("GET /hold.ics", s.handleHold)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", metrics.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type indexData struct {
	Locations []campus.Location
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "index.html.tmpl", indexData{Locations: s.locations.All()})
}

// roomView is one row of the results page.
type roomView struct {
	campus.RankedRoom
	Degraded  bool
	HoldStart string
}

type resultsData struct {
	Slot     campus.TimeSlot
	SourceUp bool
	Rooms    []roomView
}

// handleFind runs the HTML-path flow: fan out across all campus rooms,
// reduce to open/closed, rank open rooms by walking detour between the two
// chosen classes.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	last, ok := s.locations.ByID(r.PostFormValue("lastClass"))
	if !ok {
		http.Error(w, "unknown last class location", http.StatusBadRequest)
		return
	}
	next, ok := s.locations.ByID(r.PostFormValue("nextClass"))
	if !ok {
		http.Error(w, "unknown next class location", http.StatusBadRequest)
		return
	}

	at := s.now()
	if v := r.PostFormValue("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "bad 'at' timestamp", http.StatusBadRequest)
			return
		}
		at = parsed.In(s.tz)
	}

	s.findAndRender(r.Context(), w, at, last, next)
}

func (s *Server) findAndRender(ctx context.Context, w http.ResponseWriter, at time.Time, last, next campus.Location) {
	week := campus.WeekNumber(at)
	day := at.Weekday().String()
	slot := campus.HourSlot(at)
	// Bookings come back as 15-minute tokens; a room is only free when the
	// whole hour from the reference instant is clear.
	slotTokens := campus.FreeHourTokens(at)

	all := s.locations.All()
	rooms := make([]string, len(all))
	for i, loc := range all {
		rooms[i] = loc.Name
	}

	appLog.Info("find request",
		"week", week,
		"day", day,
		"slot", slot.Start,
		"rooms", len(rooms),
		"last", last.ID,
		"next", next.ID,
	)

	policy := timetable.Policy{DegradedRoomsOpen: s.cfg.DegradedOpen()}
	statuses := timetable.CheckRooms(ctx, s.schedules, rooms, week, day, slotTokens, policy)

	degraded := make(map[string]bool)
	var open []campus.Location
	for i, st := range statuses {
		if st.Degraded {
			degraded[st.Room] = true
		}
		if st.Open {
			open = append(open, all[i])
		}
	}

	ranked := campus.Rank(open, last, next)
	views := make([]roomView, 0, len(ranked))
	holdStart := at.Format(time.RFC3339)
	for _, room := range ranked {
		views = append(views, roomView{
			RankedRoom: room,
			Degraded:   degraded[room.Name],
			HoldStart:  holdStart,
		})
	}

	s.render(w, "results.html.tmpl", resultsData{
		Slot:     slot,
		SourceUp: s.prober.Last().Up,
		Rooms:    views,
	})
}

// handleUpload serves the browser upload form: resolve the ICS export, then
// run the find flow from the resolved locations at the resolved reference
// instant.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "bad upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("timetable")
	if err != nil {
		http.Error(w, "missing timetable file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	res, err := ics.Resolve(string(raw), s.now(), s.locations)
	metrics.CountUploadResolution(uploadOutcome(err))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.findAndRender(r.Context(), w, res.ReferenceInstant, res.LastLocation, res.NextLocation)
}

// uploadResponse is the JSON shape of a successful /api/upload resolution.
type uploadResponse struct {
	LastLocation campus.Location `json:"last_location"`
	NextLocation campus.Location `json:"next_location"`

	LastSummary string `json:"last_summary"`
	NextSummary string `json:"next_summary"`

	ReferenceInstant time.Time `json:"reference_instant"`
}

// handleAPIUpload resolves raw ICS text posted as the request body.
//
// POST /api/upload?now=2024-01-15T10:15:00+02:00
// The now parameter is optional and defaults to the current campus time.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil || len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "empty request body")
		return
	}

	at := s.now()
	if v := r.URL.Query().Get("now"); v != "" {
		parsed, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "bad 'now' timestamp")
			return
		}
		at = parsed.In(s.tz)
	}

	res, err := ics.Resolve(string(raw), at, s.locations)
	metrics.CountUploadResolution(uploadOutcome(err))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		LastLocation:     res.LastLocation,
		NextLocation:     res.NextLocation,
		LastSummary:      res.LastEvent.Summary,
		NextSummary:      res.NextEvent.Summary,
		ReferenceInstant: res.ReferenceInstant,
	})
}

// handleHold streams a one-event calendar blocking out the free hour in the
// chosen room.
func (s *Server) handleHold(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}
	start := s.now()
	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "bad 'start' timestamp", http.StatusBadRequest)
			return
		}
		start = parsed.In(s.tz)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tussenuur-hold.ics"`)
	_, _ = io.WriteString(w, ics.FreeHourHold(room, start, start.Add(time.Hour), s.now()))
}

// uploadOutcome maps a resolution error onto a metrics label.
func uploadOutcome(err error) string {
	var unresolved *campus.UnresolvedError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ics.ErrNoEvents), errors.Is(err, ics.ErrNoEventsToday):
		return "no_events"
	case errors.Is(err, ics.ErrGapTooShort):
		return "gap"
	case errors.As(err, &unresolved):
		return "unmatched"
	default:
		return "failed"
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, name, data); err != nil {
		appLog.Error("template render failed", err, "template", name)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

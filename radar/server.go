package radar

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the ingest and read-only query surface consumed by reporting
// dashboards. Aggregation stays on the consumer side; this API only serves
// full (optionally pre-filtered) rows.
type Server struct {
	cfg      *FileConfig
	store    *Store
	pipeline *Pipeline
}

func NewServer(cfg *FileConfig, store *Store, pipeline *Pipeline) *Server {
	return &Server{cfg: cfg, store: store, pipeline: pipeline}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	r.Use(MetricsMiddleware)

	r.Post("/ingest", s.handleIngest)
	r.Post("/names/import", s.handleImportNames)
	r.Get("/leads", s.handleLeads)
	r.Get("/names", s.handleNames)
	r.Get("/districts", s.handleDistricts)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type ingestResponse struct {
	NewRecords int    `json:"new_records"`
	Message    string `json:"message"`
}

// handleIngest accepts one raw export as the request body, bound to the
// district/center named in the query string.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	loc := Location{
		District: r.URL.Query().Get("district"),
		Center:   r.URL.Query().Get("center"),
	}
	if err := s.cfg.ValidateLocation(loc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body failed")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "empty export")
		return
	}

	count, err := s.pipeline.Ingest(string(body), loc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ingestion aborted: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{NewRecords: count, Message: IngestStatus(count)})
}

type importNamesResponse struct {
	Mapped  int    `json:"mapped"`
	Message string `json:"message"`
}

func (s *Server) handleImportNames(w http.ResponseWriter, r *http.Request) {
	count, err := ImportNames(s.store, r.Body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrMissingColumns) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, importNamesResponse{Mapped: count, Message: "ok"})
}

type leadView struct {
	ID        string    `json:"id"`
	EventAt   time.Time `json:"event_at"`
	Subject   string    `json:"subject"`
	EventKind EventKind `json:"event_kind"`
	Actor     string    `json:"actor"`
	ActorName string    `json:"actor_name"`
	District  string    `json:"district,omitempty"`
	Center    string    `json:"center,omitempty"`
	RawLine   string    `json:"raw_line"`
}

// handleLeads returns the full record set, optionally pre-filtered by
// district/center/date. Actor identifiers are resolved to display names at
// read time; unresolved identifiers pass through unchanged.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := LeadFilter{
		District: q.Get("district"),
		Center:   q.Get("center"),
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad from date, want YYYY-MM-DD")
			return
		}
		filter.From = ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad to date, want YYYY-MM-DD")
			return
		}
		// Inclusive day filter.
		filter.To = ts.Add(24*time.Hour - time.Minute)
	}

	leads, err := s.store.Leads(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query leads failed")
		return
	}
	names, err := s.store.NameIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query name mappings failed")
		return
	}

	out := make([]leadView, 0, len(leads))
	for _, l := range leads {
		out = append(out, leadView{
			ID:        l.ID,
			EventAt:   l.EventAt,
			Subject:   l.Subject,
			EventKind: l.EventKind,
			Actor:     l.Actor,
			ActorName: names.Resolve(l.Actor),
			District:  l.District,
			Center:    l.Center,
			RawLine:   l.RawLine,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.NameMappings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query name mappings failed")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Districts)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

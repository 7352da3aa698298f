package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const maxPushBodyBytes = 1 << 20

type pushRequest struct {
	Entries []ScoreEntry `json:"entries"`
}

type pushResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
}

type pullResponse struct {
	Scores []ScoreRow `json:"scores"`
}

// Handler serves the sync API.
type Handler struct {
	store *Store
	log   zerolog.Logger
}

// NewHandler creates the sync API handler over the score store.
func NewHandler(store *Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// NewRouter wires the sync API routes. The sync endpoints require a bearer
// token; the health endpoint does not.
func NewRouter(h *Handler, auth Authorizer) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger(h.log))

	router.HandleFunc("/healthz", h.Health).Methods("GET")

	sync := router.PathPrefix("/sync").Subrouter()
	sync.Use(authMiddleware(auth))
	sync.HandleFunc("/entries", h.PushEntries).Methods("POST")
	sync.HandleFunc("/entries", h.PullEntries).Methods("GET")

	return router
}

// Health reports liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PushEntries accepts one batch of completed activities and upserts it in a
// single transaction. Guest callers get an empty success so the client never
// needs to special-case them.
func (h *Handler) PushEntries(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	if id.Guest {
		writeJSON(w, http.StatusOK, pushResponse{Success: true, Synced: 0})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPushBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body too large or unreadable")
		return
	}

	if err := validatePushBody(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req pushRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	today := time.Now().UTC().Format("2006-01-02")
	for _, e := range req.Entries {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+e.Date)
			return
		}
		if d.Format("2006-01-02") > today {
			writeError(w, http.StatusBadRequest, "Cannot sync future dates")
			return
		}
	}

	if err := h.store.UpsertBatch(r.Context(), id.UserID, req.Entries); err != nil {
		h.log.Error().Err(err).Str("user", id.UserID).Msg("batch upsert failed")
		writeError(w, http.StatusInternalServerError, "failed to store entries")
		return
	}

	writeJSON(w, http.StatusOK, pushResponse{Success: true, Synced: len(req.Entries)})
}

// PullEntries returns the caller's most recent scores, newest first. Guests
// have no remote history and get an empty list.
func (h *Handler) PullEntries(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	if id.Guest {
		writeJSON(w, http.StatusOK, pullResponse{Scores: []ScoreRow{}})
		return
	}

	scores, err := h.store.ListRecent(r.Context(), id.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user", id.UserID).Msg("list scores failed")
		writeError(w, http.StatusInternalServerError, "failed to read entries")
		return
	}
	writeJSON(w, http.StatusOK, pullResponse{Scores: scores})
}

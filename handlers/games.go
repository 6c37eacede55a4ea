// Package handlers adapts the simulation.GameRepository to the REST
// surface described in spec §6: thin handlers that parse the request,
// call into the repository, and marshal the resulting snapshot.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/dgrantpete/scoreboard-sim/apperr"
	"github.com/dgrantpete/scoreboard-sim/logging"
	"github.com/dgrantpete/scoreboard-sim/simulation"
)

// eventIDPattern matches the repository's own id shape, "sim_<digits>"
// (spec §4.6, §7 invalid_event_id).
var eventIDPattern = regexp.MustCompile(`^sim_[0-9]+$`)

// GameHandler wires HTTP requests into a simulation.GameRepository.
type GameHandler struct {
	repo *simulation.GameRepository
	log  *logging.Logger
}

// NewGameHandler constructs a GameHandler over repo.
func NewGameHandler(repo *simulation.GameRepository) *GameHandler {
	return &GameHandler{repo: repo, log: logging.Default().WithPrefix("handlers")}
}

// Register mounts the four /api/mock/games routes on r, plus the
// createThrottle middleware around the POST route specifically (spec_full
// A5).
func (h *GameHandler) Register(r *mux.Router, createThrottle func(http.Handler) http.Handler) {
	r.HandleFunc("/api/mock/games", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/mock/games/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/api/mock/games", createThrottle(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.HandleFunc("/api/mock/games/{id}", h.Delete).Methods(http.MethodDelete)
}

// List handles GET /api/mock/games.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games := h.repo.List()
	writeJSON(w, http.StatusOK, games)
}

// Get handles GET /api/mock/games/{id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !eventIDPattern.MatchString(id) {
		apperr.WriteKind(w, apperr.KindInvalidEventID, "event id must match sim_<digits>")
		return
	}

	resp, err := h.repo.Get(id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/mock/games.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apperr.WriteKind(w, apperr.KindInvalidRequest, "malformed JSON body")
		return
	}

	req, err := simulation.ParseCreateGameRequest(raw)
	if err != nil {
		apperr.WriteKind(w, apperr.KindInvalidRequest, err.Error())
		return
	}

	resp, err := h.repo.Create(req)
	if err != nil {
		var invalid *simulation.InvalidRequestError
		if errors.As(err, &invalid) {
			apperr.WriteKind(w, apperr.KindInvalidRequest, err.Error())
			return
		}
		h.log.Errorf("create game: %v", err)
		apperr.WriteKind(w, apperr.KindInternal, "failed to create game")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Delete handles DELETE /api/mock/games/{id}.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !eventIDPattern.MatchString(id) {
		apperr.WriteKind(w, apperr.KindInvalidEventID, "event id must match sim_<digits>")
		return
	}

	if !h.repo.Delete(id) {
		apperr.WriteKind(w, apperr.KindGameNotFound, "no game with id "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) writeRepoError(w http.ResponseWriter, err error) {
	var notFound *simulation.NotFoundError
	if errors.As(err, &notFound) {
		apperr.WriteKind(w, apperr.KindGameNotFound, "no game with id "+notFound.ID)
		return
	}
	h.log.Errorf("repository error: %v", err)
	apperr.WriteKind(w, apperr.KindInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Default().WithPrefix("handlers").Errorf("encode response: %v", err)
	}
}

package simulation

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// LifecycleEvent names a repository-observable transition, reported to an
// optional audit sink (spec_full.md A10). It carries no meaning to the
// simulation itself.
type LifecycleEvent string

const (
	EventCreated     LifecycleEvent = "created"
	EventBecameLive  LifecycleEvent = "became_live"
	EventBecameFinal LifecycleEvent = "became_final"
	EventDeleted     LifecycleEvent = "deleted"
)

// AuditSink receives fire-and-forget lifecycle notifications from the
// repository. Implementations must not block the caller meaningfully and
// must never be invoked while the repository's write lock is held (spec
// §5's "no I/O while the writer lock is held").
type AuditSink interface {
	Record(event LifecycleEvent, gameID string, detail string)
}

type noopAuditSink struct{}

func (noopAuditSink) Record(LifecycleEvent, string, string) {}

// MetricsSink receives fire-and-forget observability counters from the
// repository, mirroring AuditSink's shape so either can be swapped for a
// no-op in tests.
type MetricsSink interface {
	RecordCreate(state string)
	RecordPlay(playType string)
	ObserveAdvance(d time.Duration)
}

type noopMetricsSink struct{}

func (noopMetricsSink) RecordCreate(string)           {}
func (noopMetricsSink) RecordPlay(string)             {}
func (noopMetricsSink) ObserveAdvance(time.Duration) {}

// GameRepository is the thread-safe store of games keyed by opaque id
// (C6). A single RWMutex guards the map; every state-advancing operation
// (Create, Get, the per-id step inside List) takes the writer side because
// every access may advance the game's simulated clock (spec §5).
type GameRepository struct {
	mu      sync.RWMutex
	games   map[string]*Game
	nextID  atomic.Uint64
	audit   AuditSink
	metrics MetricsSink
	now     func() time.Time
}

// NewGameRepository constructs an empty repository. now defaults to
// time.Now; tests may override it to freeze or control the wall clock.
func NewGameRepository() *GameRepository {
	return &GameRepository{
		games:   make(map[string]*Game),
		audit:   noopAuditSink{},
		metrics: noopMetricsSink{},
		now:     time.Now,
	}
}

// WithAuditSink attaches an audit sink used for fire-and-forget lifecycle
// notifications. Passing nil restores the no-op sink.
func (r *GameRepository) WithAuditSink(sink AuditSink) *GameRepository {
	if sink == nil {
		sink = noopAuditSink{}
	}
	r.audit = sink
	return r
}

// WithMetricsSink attaches a MetricsSink recording game creation, play
// generation, and advancement latency. Passing nil restores the no-op
// sink.
func (r *GameRepository) WithMetricsSink(sink MetricsSink) *GameRepository {
	if sink == nil {
		sink = noopMetricsSink{}
	}
	r.metrics = sink
	return r
}

// WithClock overrides the wall-clock source, for deterministic tests.
func (r *GameRepository) WithClock(now func() time.Time) *GameRepository {
	r.now = now
	return r
}

// nextGameID produces the next "sim_<n>" id, starting at 1 (spec §4.6).
func (r *GameRepository) nextGameID() string {
	n := r.nextID.Add(1)
	return "sim_" + itoa(int(n))
}

// Create constructs a game in the requested phase, inserts it, then
// immediately re-reads it through Get so a pregame request whose start
// time is already in the past comes back already advanced (spec §4.6).
func (r *GameRepository) Create(req CreateGameRequest) (scoreboard.GameResponse, error) {
	now := r.now()
	id := r.nextGameID()

	var state GameState
	switch req.State {
	case scoreboard.StatePregame:
		opts := PregameOptions{}
		if req.Pregame != nil {
			opts = *req.Pregame
		}
		state = GameState{Pregame: NewPregame(now, opts)}
	case scoreboard.StateLive:
		opts := LiveOptions{}
		if req.Live != nil {
			opts = *req.Live
		}
		live, err := NewLive(now, opts)
		if err != nil {
			return scoreboard.GameResponse{}, &InvalidRequestError{Reason: err.Error()}
		}
		state = GameState{Live: live}
	case scoreboard.StateFinal:
		opts := FinalOptions{}
		if req.Final != nil {
			opts = *req.Final
		}
		state = GameState{Final: NewFinal(opts)}
	default:
		return scoreboard.GameResponse{}, &InvalidRequestError{Reason: "unrecognized state " + string(req.State)}
	}

	game := &Game{ID: id, CreatedAt: now, LastAccessed: now, State: state}

	r.mu.Lock()
	r.games[id] = game
	r.mu.Unlock()

	r.audit.Record(EventCreated, id, string(req.State))
	r.metrics.RecordCreate(string(req.State))

	resp, _, err := r.get(id)
	return resp, err
}

// InvalidRequestError reports a malformed CreateGameRequest.
type InvalidRequestError struct{ Reason string }

func (e *InvalidRequestError) Error() string { return "simulation: invalid request: " + e.Reason }

// NotFoundError reports an unknown game id.
type NotFoundError struct{ ID string }

func (e *NotFoundError) Error() string { return "simulation: game not found: " + e.ID }

// Get locates a game by id, advances its lifecycle state to the current
// wall-instant under exclusive access, and returns a detached snapshot of
// the result (spec §4.5, §4.6).
func (r *GameRepository) Get(id string) (scoreboard.GameResponse, error) {
	resp, _, err := r.get(id)
	return resp, err
}

// get is the shared Get implementation; it records the lifecycle transition
// (if any) that occurred to the audit sink and also returns it.
func (r *GameRepository) get(id string) (scoreboard.GameResponse, LifecycleEvent, error) {
	now := r.now()

	r.mu.Lock()
	game, ok := r.games[id]
	if !ok {
		r.mu.Unlock()
		return scoreboard.GameResponse{}, "", &NotFoundError{ID: id}
	}

	wasPregame := game.State.Pregame != nil
	wasLive := game.State.Live != nil
	var playsBefore int
	if wasLive {
		playsBefore = len(game.State.Live.PlayHistory)
	}

	game.Touch(now)
	start := time.Now()
	tick(game, now)
	elapsed := time.Since(start)

	isLive := game.State.Live != nil
	isFinal := game.State.Final != nil

	if wasLive && isLive {
		for _, p := range game.State.Live.PlayHistory[playsBefore:] {
			r.metrics.RecordPlay(string(p.PlayType))
		}
	}

	resp := game.ToGameResponse()
	r.mu.Unlock()

	r.metrics.ObserveAdvance(elapsed)

	var event LifecycleEvent
	switch {
	case wasPregame && isLive:
		event = EventBecameLive
	case wasLive && isFinal:
		event = EventBecameFinal
	}
	if event != "" {
		r.audit.Record(event, id, "")
	}

	return resp, event, nil
}

// List enumerates every game, advancing each in turn. Ids are snapshotted
// under the reader lock and then released; each id is then re-fetched
// through Get, so a mutation racing with List can never be observed
// half-applied (spec §4.6).
func (r *GameRepository) List() []scoreboard.GameResponse {
	r.mu.RLock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	out := make([]scoreboard.GameResponse, 0, len(ids))
	for _, id := range ids {
		resp, err := r.Get(id)
		if err != nil {
			// The game was deleted between the id snapshot and the
			// re-fetch; skip it rather than surface a spurious error.
			continue
		}
		out = append(out, resp)
	}
	return out
}

// Delete removes a game by id, reporting whether it existed.
func (r *GameRepository) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.games[id]
	delete(r.games, id)
	r.mu.Unlock()

	if ok {
		r.audit.Record(EventDeleted, id, "")
	}
	return ok
}

// Len reports the current number of stored games, primarily for tests and
// metrics.
func (r *GameRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

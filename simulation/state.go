// Package simulation implements the mock NFL game engine (spec §3–§5): a
// play-by-play simulator that advances lazily on access and exposes its
// state through a thread-safe repository.
package simulation

import (
	"math/rand/v2"
	"time"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// TeamInfo is the internal team representation carried by every phase.
type TeamInfo struct {
	Abbreviation string
	Color        scoreboard.Color
	Record       *string
}

func (t TeamInfo) toTeam() scoreboard.Team {
	return scoreboard.Team{Abbreviation: t.Abbreviation, Color: t.Color, Record: t.Record}
}

func (t TeamInfo) toTeamWithScore(score, timeouts uint8) scoreboard.TeamWithScore {
	return scoreboard.TeamWithScore{
		Abbreviation: t.Abbreviation,
		Color:        t.Color,
		Record:       t.Record,
		Score:        score,
		Timeouts:     timeouts,
	}
}

// WeatherInfo is the internal weather representation, persisted from
// pregame into live.
type WeatherInfo struct {
	Temp        int16
	Description string
}

func (w *WeatherInfo) toWeather() *scoreboard.Weather {
	if w == nil {
		return nil
	}
	return &scoreboard.Weather{Temp: w.Temp, Description: w.Description}
}

// SimulatedPlay is a resolved play recorded into history.
type SimulatedPlay struct {
	PlayType     scoreboard.PlayType
	YardsGained  int8
	Description  string
	ClockElapsed uint16
}

// PregameState is the internal state of a game that has not yet started.
type PregameState struct {
	HomeTeam  TeamInfo
	AwayTeam  TeamInfo
	StartTime time.Time
	Venue     string
	Broadcast string
	Weather   *WeatherInfo
	// Seed drives the live RNG once the game transitions to live.
	Seed      uint64
	TimeScale float64
}

// ShouldStart reports whether now is at or after the scheduled start.
func (p *PregameState) ShouldStart(now time.Time) bool {
	return !now.Before(p.StartTime)
}

func (p *PregameState) toPregameGame(eventID string) scoreboard.PregameGame {
	var venue, broadcast *string
	if p.Venue != "" {
		venue = &p.Venue
	}
	if p.Broadcast != "" {
		broadcast = &p.Broadcast
	}
	return scoreboard.PregameGame{
		EventID:   eventID,
		Home:      p.HomeTeam.toTeam(),
		Away:      p.AwayTeam.toTeam(),
		StartTime: p.StartTime.UTC().Format(time.RFC3339),
		Venue:     venue,
		Broadcast: broadcast,
		Weather:   p.Weather.toWeather(),
	}
}

// toLiveState transitions a pregame into the opening kickoff of a live game.
// now is used only to stamp the wall-clock the live advancement is measured
// against; all other randomness derives from the stored seed.
func (p *PregameState) toLiveState(now time.Time) *LiveState {
	rng := seededRNG(p.Seed)

	possession := scoreboard.PossessionAway
	if rng.Float64() < 0.5 {
		possession = scoreboard.PossessionHome
	}

	return &LiveState{
		HomeTeam:             p.HomeTeam,
		AwayTeam:             p.AwayTeam,
		Quarter:              scoreboard.QuarterFirst,
		ClockSeconds:         900,
		ClockRunning:         false,
		Possession:           possession,
		Down:                 scoreboard.DownFirst,
		Distance:             10,
		YardLine:             25,
		HomeTimeouts:         3,
		AwayTimeouts:         3,
		RNG:                  rng,
		GameStartInstant:     now,
		SimulatedGameSeconds: 0,
		TimeScale:            p.TimeScale,
		KickoffPending:       true,
		Weather:              p.Weather,
	}
}

// LiveState is the internal state of an in-progress game.
type LiveState struct {
	HomeTeam     TeamInfo
	AwayTeam     TeamInfo
	HomeScore    uint8
	AwayScore    uint8
	Quarter      scoreboard.Quarter
	ClockSeconds uint16
	ClockRunning bool
	Possession   scoreboard.Possession
	Down         scoreboard.Down
	Distance     uint8
	YardLine     uint8
	HomeTimeouts uint8
	AwayTimeouts uint8
	LastPlay     *SimulatedPlay
	PlayHistory  []SimulatedPlay
	// RNG drives all simulation randomness. The repository projects a game
	// to a scoreboard.GameResponse under its lock, so the RNG never leaves it.
	RNG                  *rand.Rand
	GameStartInstant     time.Time
	SimulatedGameSeconds uint64
	TimeScale            float64
	KickoffPending       bool
	Weather              *WeatherInfo
	twoMinuteWarned      bool
}

// maxHistoryPlays bounds in-memory play history retention (spec §5). The
// projection only ever surfaces LastPlay, so trimming history never changes
// externally observable behavior.
const maxHistoryPlays = 2048

func (l *LiveState) recordPlay(p SimulatedPlay) {
	l.LastPlay = &p
	l.PlayHistory = append(l.PlayHistory, p)
	if len(l.PlayHistory) > maxHistoryPlays {
		excess := len(l.PlayHistory) - maxHistoryPlays
		l.PlayHistory = l.PlayHistory[excess:]
	}
}

func (l *LiveState) toLiveGame(eventID string) scoreboard.LiveGame {
	var situation *scoreboard.Situation
	if !l.KickoffPending {
		situation = &scoreboard.Situation{
			Down:       l.Down,
			Distance:   l.Distance,
			YardLine:   l.YardLine,
			Possession: l.Possession,
			RedZone:    l.YardLine >= 80,
		}
	}

	var lastPlay *scoreboard.LastPlay
	if l.LastPlay != nil {
		text := l.LastPlay.Description
		lastPlay = &scoreboard.LastPlay{PlayType: l.LastPlay.PlayType, Text: &text}
	}

	return scoreboard.LiveGame{
		EventID:      eventID,
		Home:         l.HomeTeam.toTeamWithScore(l.HomeScore, l.HomeTimeouts),
		Away:         l.AwayTeam.toTeamWithScore(l.AwayScore, l.AwayTimeouts),
		Quarter:      l.Quarter,
		Clock:        FormatClock(l.ClockSeconds),
		ClockRunning: l.ClockRunning,
		Situation:    situation,
		LastPlay:     lastPlay,
		Weather:      l.Weather.toWeather(),
	}
}

// IsGameOver reports whether the live game has reached a terminal
// condition (spec §3 invariants, §4.4): zero clock at the end of
// regulation with an untied score, zero clock at the end of OT2 whatever
// the score, or a score breaking a tie during sudden-death overtime.
func (l *LiveState) IsGameOver() bool {
	return gameShouldEnd(l)
}

func (l *LiveState) toFinalState() *FinalState {
	overtime := l.Quarter == scoreboard.QuarterOvertime || l.Quarter == scoreboard.QuarterDoubleOvertime
	return &FinalState{
		HomeTeam:  l.HomeTeam,
		AwayTeam:  l.AwayTeam,
		HomeScore: l.HomeScore,
		AwayScore: l.AwayScore,
		Overtime:  overtime,
	}
}

// FinalState is the internal state of a completed game.
type FinalState struct {
	HomeTeam  TeamInfo
	AwayTeam  TeamInfo
	HomeScore uint8
	AwayScore uint8
	Overtime  bool
}

func (f *FinalState) toFinalGame(eventID string) scoreboard.FinalGame {
	winner := scoreboard.WinnerTie
	if f.HomeScore > f.AwayScore {
		winner = scoreboard.WinnerHome
	} else if f.AwayScore > f.HomeScore {
		winner = scoreboard.WinnerAway
	}

	status := scoreboard.StatusFinal
	if f.Overtime {
		status = scoreboard.StatusFinalOT
	}

	return scoreboard.FinalGame{
		EventID: eventID,
		Home:    f.HomeTeam.toTeamWithScore(f.HomeScore, 0),
		Away:    f.AwayTeam.toTeamWithScore(f.AwayScore, 0),
		Status:  status,
		Winner:  winner,
	}
}

// GameState is a closed, tagged union over the three lifecycle phases.
// Exactly one field is non-nil.
type GameState struct {
	Pregame *PregameState
	Live    *LiveState
	Final   *FinalState
}

// Game is a repository record: an opaque id, creation/access wall-instants,
// and the current phase-tagged state.
type Game struct {
	ID           string
	CreatedAt    time.Time
	LastAccessed time.Time
	State        GameState
}

// Touch refreshes the last-accessed wall-instant.
func (g *Game) Touch(now time.Time) {
	g.LastAccessed = now
}

// ToGameResponse derives the outward-facing snapshot for the current phase.
func (g *Game) ToGameResponse() scoreboard.GameResponse {
	switch {
	case g.State.Pregame != nil:
		pg := g.State.Pregame.toPregameGame(g.ID)
		return scoreboard.GameResponse{State: scoreboard.StatePregame, Pregame: &pg}
	case g.State.Live != nil:
		lg := g.State.Live.toLiveGame(g.ID)
		return scoreboard.GameResponse{State: scoreboard.StateLive, Live: &lg}
	case g.State.Final != nil:
		fg := g.State.Final.toFinalGame(g.ID)
		return scoreboard.GameResponse{State: scoreboard.StateFinal, Final: &fg}
	default:
		panic("simulation: Game has no state set")
	}
}

// seededRNG constructs a deterministic RNG from a single uint64 seed. PCG
// takes two 64-bit seed halves; the second half is derived from the first
// with a fixed odd constant so a single seed still yields a well-distributed
// stream (this does not need to be cryptographic, only reproducible).
func seededRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// FormatClock renders whole seconds as "M:SS" (minutes un-zero-padded,
// seconds zero-padded), per spec §4.7.
func FormatClock(seconds uint16) string {
	minutes := seconds / 60
	secs := seconds % 60
	return itoa(int(minutes)) + ":" + pad2(int(secs))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func pad2(n int) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}

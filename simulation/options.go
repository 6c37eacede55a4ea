package simulation

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
	"github.com/dgrantpete/scoreboard-sim/teams"
)

// DefaultTimeScale is the wall-to-game-second multiplier used when a
// creation request omits time_scale (spec §4.8, §4.4).
const DefaultTimeScale = 60.0

var weatherDescriptions = []string{
	"Clear skies",
	"Partly cloudy",
	"Overcast",
	"Light rain",
	"Windy",
	"Snow flurries",
}

// TeamOption is the optional, request-shaped team reference accepted by
// CreateGameRequest: a looked-up abbreviation plus an optional record
// string. Both fields are optional; a blank abbreviation means "pick one
// at random."
type TeamOption struct {
	Abbreviation string
	Record       *string
}

// WeatherOption is the optional, partially-specified weather accepted by a
// creation request. A nil *WeatherOption means "maybe generate one";
// fields left nil within a present option fall back to randomized values.
type WeatherOption struct {
	Temp        *int16
	Description *string
}

// PregameOptions is the request shape for state="pregame" (spec §4.8).
type PregameOptions struct {
	Home      *TeamOption
	Away      *TeamOption
	StartTime *time.Time
	Venue     string
	Broadcast string
	Weather   *WeatherOption
	Seed      *uint64
	TimeScale *float64
}

// LiveOptions is the request shape for state="live" (spec §4.8).
type LiveOptions struct {
	Home         *TeamOption
	Away         *TeamOption
	HomeScore    *uint8
	AwayScore    *uint8
	Quarter      *scoreboard.Quarter
	Clock        *string
	Down         *scoreboard.Down
	Distance     *uint8
	YardLine     *uint8
	Possession   *scoreboard.Possession
	HomeTimeouts *uint8
	AwayTimeouts *uint8
	Weather      *WeatherOption
	Seed         *uint64
	TimeScale    *float64
}

// FinalOptions is the request shape for state="final" (spec §4.8).
type FinalOptions struct {
	Home      *TeamOption
	Away      *TeamOption
	HomeScore *uint8
	AwayScore *uint8
	Overtime  *bool
}

// CreateGameRequest is the tagged union accepted by GameRepository.Create.
// Exactly one of Pregame, Live, Final is set, chosen by State.
type CreateGameRequest struct {
	State   scoreboard.State
	Pregame *PregameOptions
	Live    *LiveOptions
	Final   *FinalOptions
}

// finalScoreWeights mirrors the realistic final-score distribution from
// spec §4.8: these are the scores an NFL team actually posts, weighted
// toward the common ones (touchdown-and-field-goal combinations) over the
// rare ones.
var finalScoreOptions = []uint8{0, 3, 6, 7, 10, 13, 14, 17, 20, 21, 23, 24, 27, 28, 30, 31, 34, 35, 38, 42, 45}
var finalScoreWeights = []int{1, 2, 1, 6, 5, 3, 5, 6, 4, 5, 3, 5, 4, 3, 2, 3, 2, 2, 1, 1, 1}

func resolveMatchup(rng *mrand.Rand, home, away *TeamOption) (TeamInfo, TeamInfo) {
	homeTeam, homeOK := resolveTeam(home)
	awayTeam, awayOK := resolveTeam(away)

	if homeOK && awayOK && homeTeam.Abbreviation != awayTeam.Abbreviation {
		return homeTeam, awayTeam
	}

	for {
		h, a := teams.RandomMatchup(rng)
		if !homeOK {
			homeTeam = TeamInfo{Abbreviation: h.Abbreviation, Color: h.Color}
		}
		if !awayOK {
			awayTeam = TeamInfo{Abbreviation: a.Abbreviation, Color: a.Color}
		}
		if homeTeam.Abbreviation != awayTeam.Abbreviation {
			return homeTeam, awayTeam
		}
	}
}

func resolveTeam(opt *TeamOption) (TeamInfo, bool) {
	if opt == nil || opt.Abbreviation == "" {
		return TeamInfo{}, false
	}
	catalog, ok := teams.Lookup(opt.Abbreviation)
	if !ok {
		return TeamInfo{}, false
	}
	return TeamInfo{Abbreviation: catalog.Abbreviation, Color: catalog.Color, Record: opt.Record}, true
}

func resolveWeather(rng *mrand.Rand, opt *WeatherOption, fallbackChance float64) *WeatherInfo {
	if opt == nil {
		if rng.Float64() >= fallbackChance {
			return nil
		}
		opt = &WeatherOption{}
	}

	w := WeatherInfo{}
	if opt.Temp != nil {
		w.Temp = *opt.Temp
	} else {
		w.Temp = int16(randRange(rng, 20, 86))
	}
	if opt.Description != nil {
		w.Description = *opt.Description
	} else {
		w.Description = weatherDescriptions[rng.IntN(len(weatherDescriptions))]
	}
	return &w
}

func resolveSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unheard of on supported
		// platforms; fall back to a time-derived seed rather than fail a
		// game creation over it.
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func resolveTimeScale(ts *float64) float64 {
	if ts != nil {
		return *ts
	}
	return DefaultTimeScale
}

// NewPregame resolves a PregameOptions into a fresh PregameState, filling
// in every randomized or defaulted field per spec §4.8.
func NewPregame(now time.Time, opts PregameOptions) *PregameState {
	seed := resolveSeed(opts.Seed)
	rng := seededRNG(seed)

	home, away := resolveMatchup(rng, opts.Home, opts.Away)

	startTime := now.Add(30 * time.Second)
	if opts.StartTime != nil {
		startTime = *opts.StartTime
	}

	return &PregameState{
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: startTime,
		Venue:     opts.Venue,
		Broadcast: opts.Broadcast,
		Weather:   resolveWeather(rng, opts.Weather, 0.8),
		Seed:      seed,
		TimeScale: resolveTimeScale(opts.TimeScale),
	}
}

// NewLive resolves a LiveOptions into a fresh LiveState, already mid-game
// per whatever fields the request specified (spec §4.8 "Live defaults").
func NewLive(now time.Time, opts LiveOptions) (*LiveState, error) {
	seed := resolveSeed(opts.Seed)
	rng := seededRNG(seed)

	home, away := resolveMatchup(rng, opts.Home, opts.Away)

	quarter := scoreboard.QuarterFirst
	if opts.Quarter != nil {
		quarter = *opts.Quarter
	}

	clockSeconds := uint16(900)
	if opts.Clock != nil {
		parsed, err := ParseClock(*opts.Clock)
		if err != nil {
			return nil, fmt.Errorf("simulation: invalid clock %q: %w", *opts.Clock, err)
		}
		clockSeconds = parsed
	}

	down := scoreboard.DownFirst
	if opts.Down != nil {
		down = *opts.Down
	}

	distance := uint8(10)
	if opts.Distance != nil {
		distance = *opts.Distance
	}

	yardLine := uint8(25)
	yardLineSpecified := opts.YardLine != nil
	if yardLineSpecified {
		yardLine = *opts.YardLine
	}

	possession := scoreboard.PossessionAway
	possessionSpecified := opts.Possession != nil
	if possessionSpecified {
		possession = *opts.Possession
	} else if rng.Float64() < 0.5 {
		possession = scoreboard.PossessionHome
	}

	homeTimeouts := uint8(3)
	if opts.HomeTimeouts != nil {
		homeTimeouts = *opts.HomeTimeouts
	}
	awayTimeouts := uint8(3)
	if opts.AwayTimeouts != nil {
		awayTimeouts = *opts.AwayTimeouts
	}

	homeScore := uint8(0)
	if opts.HomeScore != nil {
		homeScore = *opts.HomeScore
	}
	awayScore := uint8(0)
	if opts.AwayScore != nil {
		awayScore = *opts.AwayScore
	}

	return &LiveState{
		HomeTeam:             home,
		AwayTeam:             away,
		HomeScore:            homeScore,
		AwayScore:            awayScore,
		Quarter:              quarter,
		ClockSeconds:         clockSeconds,
		ClockRunning:         false,
		Possession:           possession,
		Down:                 down,
		Distance:             distance,
		YardLine:             yardLine,
		HomeTimeouts:         homeTimeouts,
		AwayTimeouts:         awayTimeouts,
		RNG:                  rng,
		GameStartInstant:     now,
		SimulatedGameSeconds: 0,
		TimeScale:            resolveTimeScale(opts.TimeScale),
		// kickoff_pending is true iff neither yard_line nor possession was
		// specified (spec §4.8).
		KickoffPending: !yardLineSpecified && !possessionSpecified,
		Weather:        resolveWeather(rng, opts.Weather, 0),
	}, nil
}

// NewFinal resolves a FinalOptions into a fresh FinalState, drawing scores
// from the realistic weighted distribution when unspecified (spec §4.8).
func NewFinal(opts FinalOptions) *FinalState {
	rng := seededRNG(uint64(time.Now().UnixNano()))
	home, away := resolveMatchup(rng, opts.Home, opts.Away)

	homeScore := weightedFinalScore(rng)
	if opts.HomeScore != nil {
		homeScore = *opts.HomeScore
	}
	awayScore := weightedFinalScore(rng)
	if opts.AwayScore != nil {
		awayScore = *opts.AwayScore
	}

	overtime := false
	if opts.Overtime != nil {
		overtime = *opts.Overtime
	}

	return &FinalState{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Overtime:  overtime,
	}
}

func weightedFinalScore(rng *mrand.Rand) uint8 {
	total := 0
	for _, w := range finalScoreWeights {
		total += w
	}
	pick := rng.IntN(total)
	for i, w := range finalScoreWeights {
		if pick < w {
			return finalScoreOptions[i]
		}
		pick -= w
	}
	return finalScoreOptions[len(finalScoreOptions)-1]
}

// ParseClock parses an "M:SS" game-clock string into whole seconds.
func ParseClock(s string) (uint16, error) {
	var minutes, seconds int
	if _, err := fmt.Sscanf(s, "%d:%d", &minutes, &seconds); err != nil {
		return 0, fmt.Errorf("expected M:SS, got %q", s)
	}
	if seconds < 0 || seconds > 59 || minutes < 0 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	total := minutes*60 + seconds
	if total > 3599 {
		return 0, fmt.Errorf("clock %q exceeds one hour", s)
	}
	return uint16(total), nil
}

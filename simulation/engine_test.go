package simulation

import (
	"testing"
	"time"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

func newLiveFixture() *LiveState {
	return &LiveState{
		HomeTeam:         TeamInfo{Abbreviation: "KC"},
		AwayTeam:         TeamInfo{Abbreviation: "PHI"},
		Quarter:          scoreboard.QuarterFourth,
		ClockSeconds:     1,
		Possession:       scoreboard.PossessionHome,
		Down:             scoreboard.DownFirst,
		Distance:         10,
		YardLine:         25,
		HomeTimeouts:     3,
		AwayTimeouts:     3,
		RNG:              seededRNG(1),
		GameStartInstant: time.Unix(0, 0),
		TimeScale:        1,
	}
}

func TestAdvanceQuarterHalftimeResetsTimeoutsAndFlipsPossession(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterSecond
	l.ClockSeconds = 0
	l.HomeTimeouts, l.AwayTimeouts = 0, 1
	l.Possession = scoreboard.PossessionHome
	l.twoMinuteWarned = true

	advanceQuarter(l)

	if l.Quarter != scoreboard.QuarterThird {
		t.Fatalf("quarter = %v, want third", l.Quarter)
	}
	if l.HomeTimeouts != 3 || l.AwayTimeouts != 3 {
		t.Fatalf("timeouts not reset at halftime: home=%d away=%d", l.HomeTimeouts, l.AwayTimeouts)
	}
	if l.Possession != scoreboard.PossessionAway {
		t.Fatalf("possession should flip at halftime, got %v", l.Possession)
	}
	if !l.KickoffPending {
		t.Fatal("halftime should set kickoff pending")
	}
	if l.twoMinuteWarned {
		t.Fatal("two-minute-warning flag should reset at halftime")
	}
}

func TestAdvanceQuarterFourthToOvertimeReducesTimeoutsToTwo(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterFourth
	l.ClockSeconds = 0
	l.HomeTimeouts, l.AwayTimeouts = 3, 3

	advanceQuarter(l)

	if l.Quarter != scoreboard.QuarterOvertime {
		t.Fatalf("quarter = %v, want OT", l.Quarter)
	}
	if l.HomeTimeouts != 2 || l.AwayTimeouts != 2 {
		t.Fatalf("OT should carry 2 timeouts, got home=%d away=%d", l.HomeTimeouts, l.AwayTimeouts)
	}
	if l.ClockSeconds != 600 {
		t.Fatalf("OT clock = %d, want 600", l.ClockSeconds)
	}
}

func TestGameShouldEndTiedRegulationGoesToOvertime(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterFourth
	l.ClockSeconds = 0
	l.HomeScore, l.AwayScore = 14, 14

	if gameShouldEnd(l) {
		t.Fatal("a tied fourth quarter at 0:00 should go to overtime, not end")
	}
}

func TestGameShouldEndRegulationUntiedEnds(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterFourth
	l.ClockSeconds = 0
	l.HomeScore, l.AwayScore = 21, 14

	if !gameShouldEnd(l) {
		t.Fatal("an untied fourth quarter at 0:00 should end")
	}
}

func TestGameShouldEndOvertimeScoreBreaksTie(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterOvertime
	l.ClockSeconds = 300
	l.HomeScore, l.AwayScore = 24, 21

	if !gameShouldEnd(l) {
		t.Fatal("any score differential during overtime should end the game immediately")
	}
}

func TestGameShouldEndOvertimeStillTiedContinues(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterOvertime
	l.ClockSeconds = 0
	l.HomeScore, l.AwayScore = 17, 17

	if gameShouldEnd(l) {
		t.Fatal("a tied single overtime period should never end with winner:tie")
	}
}

func TestGameShouldEndDoubleOvertimeTiedEndsInTie(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterDoubleOvertime
	l.ClockSeconds = 0
	l.HomeScore, l.AwayScore = 17, 17

	if !gameShouldEnd(l) {
		t.Fatal("a tied game expiring after double overtime must end")
	}
}

func TestTickClockNeverUnderflows(t *testing.T) {
	l := newLiveFixture()
	l.ClockSeconds = 5
	tickClock(l, 30)
	if l.ClockSeconds != 0 {
		t.Fatalf("clock should clamp to 0, got %d", l.ClockSeconds)
	}
}

func TestAdvanceRunawayGuardCapsAtFourHours(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterFirst
	l.ClockSeconds = 900
	l.GameStartInstant = time.Unix(0, 0)
	l.TimeScale = 1
	l.KickoffPending = true

	now := time.Unix(0, 0).Add(10 * time.Hour)
	Advance(l, now)

	if l.SimulatedGameSeconds > maxGameSecondsPerAdvance {
		t.Fatalf("simulated_game_seconds = %d, want <= %d after a 10-hour idle", l.SimulatedGameSeconds, maxGameSecondsPerAdvance)
	}
}

func TestAdvanceIsDeterministicGivenSeedAndElapsed(t *testing.T) {
	build := func() *LiveState {
		l := newLiveFixture()
		l.Quarter = scoreboard.QuarterFirst
		l.ClockSeconds = 900
		l.GameStartInstant = time.Unix(0, 0)
		l.TimeScale = 1
		l.KickoffPending = true
		l.RNG = seededRNG(777)
		return l
	}

	a := build()
	b := build()
	now := time.Unix(0, 0).Add(60 * time.Second)

	Advance(a, now)
	Advance(b, now)

	if len(a.PlayHistory) != len(b.PlayHistory) {
		t.Fatalf("play history length differs: %d vs %d", len(a.PlayHistory), len(b.PlayHistory))
	}
	for i := range a.PlayHistory {
		if a.PlayHistory[i] != b.PlayHistory[i] {
			t.Fatalf("play %d differs between identically-seeded runs: %+v vs %+v", i, a.PlayHistory[i], b.PlayHistory[i])
		}
	}
}

func TestAdvanceScoresNeverDecrease(t *testing.T) {
	l := newLiveFixture()
	l.Quarter = scoreboard.QuarterFirst
	l.ClockSeconds = 900
	l.GameStartInstant = time.Unix(0, 0)
	l.TimeScale = 200
	l.KickoffPending = true

	prevHome, prevAway := l.HomeScore, l.AwayScore
	for sec := int64(1); sec <= 60; sec++ {
		now := time.Unix(0, 0).Add(time.Duration(sec) * time.Second)
		Advance(l, now)
		if l.HomeScore < prevHome || l.AwayScore < prevAway {
			t.Fatalf("score decreased: home %d->%d away %d->%d", prevHome, l.HomeScore, prevAway, l.AwayScore)
		}
		prevHome, prevAway = l.HomeScore, l.AwayScore
		if gameShouldEnd(l) {
			break
		}
	}
}

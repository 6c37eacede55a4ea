package simulation

import (
	"time"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// maxGameSecondsPerAdvance bounds how far a single Advance call will walk
// the simulation forward, regardless of how much wall-clock time has
// actually elapsed since the last access. Without this guard a game nobody
// has polled in days would replay hours of plays synchronously the moment
// someone finally asks for it. Four hours of game-seconds comfortably
// covers any real broadcast window.
const maxGameSecondsPerAdvance = 14400

// minSnapInterval and maxSnapInterval bound the real-world dead time between the end
// of one play and the snap of the next (huddle, play clock).
const minSnapInterval, maxSnapInterval = 18, 32

// Advance walks l forward from its last-known instant to now, generating
// and applying plays until it catches up, the game ends, or the runaway
// guard trips. It returns true if the game reached a terminal state.
func Advance(l *LiveState, now time.Time) (gameOver bool) {
	elapsedWall := now.Sub(l.GameStartInstant).Seconds()
	if elapsedWall < 0 {
		elapsedWall = 0
	}
	target := uint64(elapsedWall * l.TimeScale)

	if target > l.SimulatedGameSeconds+maxGameSecondsPerAdvance {
		target = l.SimulatedGameSeconds + maxGameSecondsPerAdvance
	}

	for l.SimulatedGameSeconds < target {
		if gameShouldEnd(l) {
			return true
		}

		outcome := GeneratePlay(l)
		applyOutcome(l, outcome)

		elapsed := uint64(outcome.ClockElapsed) + uint64(randRange(l.RNG, minSnapInterval, maxSnapInterval))
		l.SimulatedGameSeconds += elapsed

		clockRunning := !outcome.PlayType.StopsClock() && !l.KickoffPending
		if clockRunning {
			tickClock(l, outcome.ClockElapsed)
		} else {
			fallback := outcome.ClockElapsed
			if fallback > 5 {
				fallback = 5
			}
			tickClock(l, fallback)
		}
		l.ClockRunning = clockRunning

		checkTwoMinuteWarning(l)

		if gameShouldEnd(l) {
			return true
		}

		if l.ClockSeconds == 0 {
			advanceQuarter(l)
		}
	}

	return gameShouldEnd(l)
}

// tickClock decrements the displayed clock by elapsed seconds, never
// underflowing past zero.
func tickClock(l *LiveState, elapsed uint16) {
	if uint16(elapsed) >= l.ClockSeconds {
		l.ClockSeconds = 0
		return
	}
	l.ClockSeconds -= elapsed
}

// checkTwoMinuteWarning stops the clock the first time it crosses below
// two minutes in the second or fourth quarter.
func checkTwoMinuteWarning(l *LiveState) {
	if l.Quarter != scoreboard.QuarterSecond && l.Quarter != scoreboard.QuarterFourth {
		return
	}
	if l.ClockSeconds > 120 || l.twoMinuteWarned {
		return
	}
	l.twoMinuteWarned = true
	l.ClockRunning = false
	l.recordPlay(SimulatedPlay{scoreboard.PlayTwoMinuteWarning, 0, "Two minute warning", 0})
}

// advanceQuarter handles the clock hitting zero: period transitions,
// halftime reset, and regulation-to-overtime handoff. It is never called
// once gameShouldEnd has already returned true.
func advanceQuarter(l *LiveState) {
	switch l.Quarter {
	case scoreboard.QuarterFirst:
		l.Quarter = scoreboard.QuarterSecond
		l.ClockSeconds = 900
	case scoreboard.QuarterSecond:
		l.Quarter = scoreboard.QuarterThird
		l.ClockSeconds = 900
		l.HomeTimeouts = 3
		l.AwayTimeouts = 3
		l.twoMinuteWarned = false
		l.Possession = l.Possession.Opponent()
		l.KickoffPending = true
	case scoreboard.QuarterThird:
		l.Quarter = scoreboard.QuarterFourth
		l.ClockSeconds = 900
	case scoreboard.QuarterFourth:
		l.Quarter = scoreboard.QuarterOvertime
		l.ClockSeconds = 600
		l.HomeTimeouts = 2
		l.AwayTimeouts = 2
		l.twoMinuteWarned = false
		l.KickoffPending = true
	case scoreboard.QuarterOvertime:
		l.Quarter = scoreboard.QuarterDoubleOvertime
		l.ClockSeconds = 600
		l.KickoffPending = true
	default:
		l.ClockSeconds = 0
	}
}

// gameShouldEnd is the single source of truth for whether l has reached a
// terminal state: regulation expiring with an untied score, a score during
// overtime breaking the tie (sudden death), or double overtime expiring,
// which ends the game whatever the score.
func gameShouldEnd(l *LiveState) bool {
	if (l.Quarter == scoreboard.QuarterOvertime || l.Quarter == scoreboard.QuarterDoubleOvertime) &&
		l.HomeScore != l.AwayScore {
		return true
	}
	if l.ClockSeconds > 0 {
		return false
	}
	switch l.Quarter {
	case scoreboard.QuarterFourth:
		return l.HomeScore != l.AwayScore
	case scoreboard.QuarterDoubleOvertime:
		return true
	default:
		return false
	}
}

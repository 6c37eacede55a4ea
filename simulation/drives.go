package simulation

import (
	"fmt"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// applyOutcome folds a generated PlayOutcome into LiveState: score, field
// position, down/distance, possession and the recorded play history. It
// does not touch the clock beyond what's already on the outcome; engine.go
// owns quarter/halftime transitions.
func applyOutcome(l *LiveState, outcome PlayOutcome) {
	switch {
	case l.KickoffPending:
		applyKickoff(l, outcome)
	case outcome.Scoring == ScoreTouchdown:
		applyTouchdown(l, outcome)
	case outcome.Scoring == ScoreFieldGoal:
		applyFieldGoal(l, outcome)
	case outcome.Scoring == ScoreSafety:
		applySafety(l, outcome)
	case outcome.PlayType == scoreboard.PlayInterception,
		outcome.PlayType == scoreboard.PlayFumbleRecoveryOpponent:
		applyTurnover(l, outcome)
	case outcome.PlayType == scoreboard.PlayPunt:
		applyPunt(l, outcome)
	case outcome.PlayType == scoreboard.PlayFieldGoalMissed,
		outcome.PlayType == scoreboard.PlayBlockedFieldGoal:
		applyFailedFieldGoal(l, outcome)
	default:
		applyRegularPlay(l, outcome)
	}
}

func record(l *LiveState, outcome PlayOutcome) {
	l.recordPlay(SimulatedPlay{outcome.PlayType, outcome.YardsGained, outcome.Description, outcome.ClockElapsed})
}

func applyKickoff(l *LiveState, outcome PlayOutcome) {
	l.KickoffPending = false
	receiving := l.Possession

	if outcome.Scoring == ScoreTouchdown {
		scoreFor(l, receiving, 6)
		record(l, outcome)
		applyExtraPointAttempt(l, receiving)
		return
	}

	record(l, outcome)

	startYardLine := 25
	if !outcome.TouchbackOnKickoff {
		startYardLine = clampYardLine(25 + int(outcome.YardsGained))
	}
	l.YardLine = uint8(startYardLine)
	l.Down = scoreboard.DownFirst
	l.Distance = 10
}

func applyTouchdown(l *LiveState, outcome PlayOutcome) {
	scoreFor(l, l.Possession, 6)
	record(l, outcome)
	applyExtraPointAttempt(l, l.Possession)
}

// applyExtraPointAttempt resolves the PAT and hands the kickoff to the team
// that just conceded the score.
func applyExtraPointAttempt(l *LiveState, scorer scoreboard.Possession) {
	if chance(l.RNG, 0.94) {
		scoreFor(l, scorer, 1)
		l.recordPlay(SimulatedPlay{scoreboard.PlayExtraPointGood, 0, "Extra point is GOOD", 0})
	} else {
		l.recordPlay(SimulatedPlay{scoreboard.PlayExtraPointMissed, 0, "Extra point try fails", 0})
	}

	l.Possession = scorer.Opponent()
	l.KickoffPending = true
}

func applyFieldGoal(l *LiveState, outcome PlayOutcome) {
	scoreFor(l, l.Possession, 3)
	record(l, outcome)
	l.Possession = l.Possession.Opponent()
	l.KickoffPending = true
}

func applyFailedFieldGoal(l *LiveState, outcome PlayOutcome) {
	record(l, outcome)
	l.Possession = l.Possession.Opponent()
	l.YardLine = uint8(clampYardLine(100 - int(l.YardLine)))
	l.Down = scoreboard.DownFirst
	l.Distance = 10
}

// applySafety credits the defense with two points and gives them the ball
// back via a free kick from the scoring offense's own 20.
func applySafety(l *LiveState, outcome PlayOutcome) {
	record(l, outcome)
	scoringTeam := l.Possession.Opponent()
	scoreFor(l, scoringTeam, 2)
	l.Possession = scoringTeam
	l.YardLine = 20
	l.Down = scoreboard.DownFirst
	l.Distance = 10
	l.KickoffPending = true
}

func applyTurnover(l *LiveState, outcome PlayOutcome) {
	record(l, outcome)
	spotYardLine := clampYardLine(int(l.YardLine) + int(outcome.YardsGained))
	l.Possession = l.Possession.Opponent()
	l.YardLine = uint8(clampYardLine(100 - spotYardLine))
	l.Down = scoreboard.DownFirst
	l.Distance = 10
}

func applyPunt(l *LiveState, outcome PlayOutcome) {
	record(l, outcome)
	// YardsGained holds the punt distance negated, so subtracting it moves
	// the ball downfield; the landing spot is capped at the 95.
	puntedTo := int(l.YardLine) - int(outcome.YardsGained)
	if puntedTo > 95 {
		puntedTo = 95
	}
	l.Possession = l.Possession.Opponent()
	l.YardLine = uint8(clampYardLine(100 - puntedTo))
	l.Down = scoreboard.DownFirst
	l.Distance = 10
}

func applyRegularPlay(l *LiveState, outcome PlayOutcome) {
	record(l, outcome)

	rawSpot := int(l.YardLine) + int(outcome.YardsGained)
	newYardLine := clampYardLine(rawSpot)

	gained := int(outcome.YardsGained)
	if gained >= int(l.Distance) {
		l.YardLine = uint8(newYardLine)
		l.Down = scoreboard.DownFirst
		l.Distance = 10
		return
	}

	l.YardLine = uint8(newYardLine)
	remaining := int(l.Distance) - gained
	if remaining < 1 {
		remaining = 1
	}
	l.Distance = uint8(remaining)

	if l.Down == scoreboard.DownFourth {
		// Turnover on downs: possession flips, spot flips to the new
		// offense's perspective.
		spot := l.YardLine
		l.Possession = l.Possession.Opponent()
		l.YardLine = uint8(clampYardLine(100 - int(spot)))
		l.Down = scoreboard.DownFirst
		l.Distance = 10
		l.recordPlay(SimulatedPlay{scoreboard.PlayPenalty, 0, fmt.Sprintf("Turnover on downs at the %d", l.YardLine), 0})
		return
	}
	l.Down = l.Down.Next()
}

func scoreFor(l *LiveState, p scoreboard.Possession, points uint8) {
	if p == scoreboard.PossessionHome {
		l.HomeScore += points
	} else {
		l.AwayScore += points
	}
}

// clampYardLine clamps a signed yard-line computation into the repository's
// 0-100 field-position model.
func clampYardLine(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

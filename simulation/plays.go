package simulation

import (
	"fmt"
	"math/rand/v2"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// ScoringPlay tags the scoring consequence of a resolved play, if any.
type ScoringPlay string

const (
	ScoreNone      ScoringPlay = ""
	ScoreTouchdown ScoringPlay = "touchdown"
	ScoreFieldGoal ScoringPlay = "field_goal"
	ScoreSafety    ScoringPlay = "safety"
)

// PlayOutcome is the result of generating one play: enough for the drive
// engine (drives.go) to update possession, down/distance, field position,
// score and clock without re-deriving any randomness itself.
type PlayOutcome struct {
	PlayType     scoreboard.PlayType
	YardsGained  int8
	Description  string
	ClockElapsed uint16
	Turnover     bool
	Scoring      ScoringPlay
	// Kickoff/PAT outcomes that don't fit the yard-line model cleanly.
	TouchbackOnKickoff bool
}

func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// randRange returns an integer in [lo, hi), mirroring Rust's gen_range.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}

// isDesperate matches spec §4.2: Q4, under two minutes, possessing team
// trailing.
func isDesperate(l *LiveState) bool {
	if l.Quarter != scoreboard.QuarterFourth || l.ClockSeconds >= 120 {
		return false
	}
	possessingScore, opponentScore := scoresFor(l, l.Possession)
	return possessingScore < opponentScore
}

func scoresFor(l *LiveState, p scoreboard.Possession) (own, opponent uint8) {
	if p == scoreboard.PossessionHome {
		return l.HomeScore, l.AwayScore
	}
	return l.AwayScore, l.HomeScore
}

// GeneratePlay produces the next play for the current situation. It never
// mutates LiveState beyond consuming RNG draws; applying the result is
// drives.go's job.
func GeneratePlay(l *LiveState) PlayOutcome {
	if l.KickoffPending {
		return generateKickoff(l)
	}
	if l.Down == scoreboard.DownFourth {
		return generateFourthDown(l)
	}
	if chance(l.RNG, passRate(l.Down, l.Distance, l.Quarter, l.ClockSeconds)) {
		return generatePass(l)
	}
	return generateRush(l)
}

func generateKickoff(l *LiveState) PlayOutcome {
	if chance(l.RNG, 0.65) {
		return PlayOutcome{
			PlayType:           scoreboard.PlayKickoff,
			Description:        "Kickoff touchback",
			ClockElapsed:       uint16(randRange(l.RNG, 4, 7)),
			TouchbackOnKickoff: true,
		}
	}
	returnYards := int8(randRange(l.RNG, 15, 35))
	if chance(l.RNG, 0.03) {
		return PlayOutcome{
			PlayType:     scoreboard.PlayKickoffReturnTouchdown,
			YardsGained:  100,
			Description:  "Kickoff returned for a touchdown",
			ClockElapsed: uint16(randRange(l.RNG, 8, 14)),
			Scoring:      ScoreTouchdown,
		}
	}
	return PlayOutcome{
		PlayType:     scoreboard.PlayKickoffReturn,
		YardsGained:  returnYards,
		Description:  fmt.Sprintf("Kickoff returned %d yards", returnYards),
		ClockElapsed: uint16(randRange(l.RNG, 6, 12)),
	}
}

// passRate returns the probability of calling a pass play for the given
// down/distance, per spec §4.2's situational weighting table. In the
// two-minute drill (Q2 or Q4, clock at or under two minutes) it shifts
// further toward pass to reflect clock-conscious play calling.
func passRate(down scoreboard.Down, distance uint8, quarter scoreboard.Quarter, clockSeconds uint16) float64 {
	var rate float64
	switch {
	case distance >= 8:
		rate = 0.70
	case distance >= 4:
		rate = 0.55
	default:
		if down == scoreboard.DownFirst {
			rate = 0.45
		} else {
			rate = 0.35
		}
	}

	if (quarter == scoreboard.QuarterSecond || quarter == scoreboard.QuarterFourth) && clockSeconds <= 120 {
		rate += 0.30
		if rate > 1 {
			rate = 1
		}
	}

	return rate
}

func generateFourthDown(l *LiveState) PlayOutcome {
	desperate := isDesperate(l)
	inFieldGoalRange := l.YardLine >= 55

	if inFieldGoalRange {
		return generateFieldGoalAttempt(l)
	}
	if l.YardLine < 60 && !desperate && l.Distance > 2 {
		return generatePunt(l)
	}
	if l.Distance <= 2 {
		return generateRush(l)
	}
	return generatePass(l)
}

// fieldGoalSuccessRate maps attempt distance (yards from the kicking tee,
// i.e. line of scrimmage plus 17 for snap and holder depth) to make
// probability, per spec §4.2.
func fieldGoalSuccessRate(attemptDistance int) float64 {
	switch {
	case attemptDistance <= 30:
		return 0.95
	case attemptDistance <= 40:
		return 0.85
	case attemptDistance <= 50:
		return 0.70
	case attemptDistance <= 55:
		return 0.55
	default:
		return 0.40
	}
}

func generateFieldGoalAttempt(l *LiveState) PlayOutcome {
	attemptDistance := int(100-l.YardLine) + 17
	elapsed := uint16(randRange(l.RNG, 5, 8))

	if chance(l.RNG, fieldGoalSuccessRate(attemptDistance)) {
		return PlayOutcome{
			PlayType:     scoreboard.PlayFieldGoalGood,
			Description:  fmt.Sprintf("%d yard field goal is GOOD", attemptDistance),
			ClockElapsed: elapsed,
			Scoring:      ScoreFieldGoal,
		}
	}
	return PlayOutcome{
		PlayType:     scoreboard.PlayFieldGoalMissed,
		Description:  fmt.Sprintf("%d yard field goal attempt is NO GOOD", attemptDistance),
		ClockElapsed: elapsed,
		Turnover:     true,
	}
}

func generatePunt(l *LiveState) PlayOutcome {
	puntYards := int8(-randRange(l.RNG, 35, 56))
	return PlayOutcome{
		PlayType:     scoreboard.PlayPunt,
		YardsGained:  puntYards,
		Description:  fmt.Sprintf("Punts %d yards", -puntYards),
		ClockElapsed: uint16(randRange(l.RNG, 5, 10)),
		Turnover:     true,
	}
}

func generateRush(l *LiveState) PlayOutcome {
	if chance(l.RNG, 0.01) {
		if chance(l.RNG, 0.5) {
			return PlayOutcome{
				PlayType:     scoreboard.PlayFumbleRecoveryOpponent,
				Description:  "Fumbles, recovered by the defense",
				ClockElapsed: uint16(randRange(l.RNG, 5, 10)),
				Turnover:     true,
			}
		}
		return PlayOutcome{
			PlayType:     scoreboard.PlayFumbleRecoveryOwn,
			YardsGained:  int8(randRange(l.RNG, -3, 1)),
			Description:  "Fumbles, recovers own ball",
			ClockElapsed: uint16(randRange(l.RNG, 20, 36)),
		}
	}

	yards := int8(rushYards(l.RNG))

	var elapsed uint16
	if yards < 0 || chance(l.RNG, 0.30) {
		elapsed = uint16(randRange(l.RNG, 5, 15))
	} else {
		elapsed = uint16(randRange(l.RNG, 25, 45))
	}

	return withGoalLineCheck(l, yards, elapsed,
		scoreboard.PlayRushingTouchdown, "Rushes for a touchdown",
		scoreboard.PlayRush, fmt.Sprintf("Rushes for %d yards", yards))
}

// rushYards draws a rush gain from the five-bucket distribution: sometimes a
// loss or no gain, usually a short or medium gain, rarely a big play or a
// breakaway run.
func rushYards(rng *rand.Rand) int {
	switch r := rng.Float64(); {
	case r < 0.15:
		return randRange(rng, -3, 1)
	case r < 0.55:
		return randRange(rng, 1, 5)
	case r < 0.85:
		return randRange(rng, 5, 10)
	case r < 0.95:
		return randRange(rng, 10, 20)
	default:
		return randRange(rng, 20, 76)
	}
}

// withGoalLineCheck turns a drawn yardage into the matching outcome: a
// touchdown if it crosses the opponent's goal line, a safety if it crosses
// the offense's own (spec §4.2), otherwise an ordinary gain or loss.
func withGoalLineCheck(l *LiveState, yards int8, elapsed uint16, touchdownType scoreboard.PlayType, touchdownDescription string, playType scoreboard.PlayType, description string) PlayOutcome {
	switch spot := int(l.YardLine) + int(yards); {
	case spot >= 100:
		return PlayOutcome{
			PlayType:     touchdownType,
			YardsGained:  yards,
			Description:  touchdownDescription,
			ClockElapsed: elapsed,
			Scoring:      ScoreTouchdown,
		}
	case spot <= 0:
		return PlayOutcome{
			PlayType:     scoreboard.PlaySafety,
			YardsGained:  yards,
			Description:  "Tackled in the end zone for a safety",
			ClockElapsed: elapsed,
			Scoring:      ScoreSafety,
			Turnover:     true,
		}
	default:
		return PlayOutcome{
			PlayType:     playType,
			YardsGained:  yards,
			Description:  description,
			ClockElapsed: elapsed,
		}
	}
}

// withSafetyCheck is withGoalLineCheck without the touchdown branch, for
// plays that can only lose yardage (sacks) and so can never reach the far
// goal line.
func withSafetyCheck(l *LiveState, yards int8, elapsed uint16, playType scoreboard.PlayType, description string) PlayOutcome {
	if int(l.YardLine)+int(yards) <= 0 {
		return PlayOutcome{
			PlayType:     scoreboard.PlaySafety,
			YardsGained:  yards,
			Description:  "Tackled in the end zone for a safety",
			ClockElapsed: elapsed,
			Scoring:      ScoreSafety,
			Turnover:     true,
		}
	}
	return PlayOutcome{
		PlayType:     playType,
		YardsGained:  yards,
		Description:  description,
		ClockElapsed: elapsed,
	}
}

func generatePass(l *LiveState) PlayOutcome {
	elapsed := uint16(randRange(l.RNG, 5, 8))

	if chance(l.RNG, 0.07) {
		lossYards := int8(-randRange(l.RNG, 3, 11))
		return withSafetyCheck(l, lossYards, uint16(randRange(l.RNG, 25, 40)),
			scoreboard.PlaySack, fmt.Sprintf("Sacked for a loss of %d yards", -lossYards))
	}
	if chance(l.RNG, 0.025) {
		return PlayOutcome{
			PlayType:     scoreboard.PlayInterception,
			Description:  "Pass intercepted",
			ClockElapsed: elapsed,
			Turnover:     true,
		}
	}
	if chance(l.RNG, 0.35) {
		return PlayOutcome{
			PlayType:     scoreboard.PlayPassIncompletion,
			Description:  "Pass incomplete",
			ClockElapsed: elapsed,
		}
	}

	yards := int8(passYards(l.RNG, l.Distance))

	if chance(l.RNG, 0.25) {
		elapsed = uint16(randRange(l.RNG, 5, 15))
	} else {
		elapsed = uint16(randRange(l.RNG, 25, 45))
	}

	return withGoalLineCheck(l, yards, elapsed,
		scoreboard.PlayPassingTouchdown, "Pass complete for a touchdown",
		scoreboard.PlayPassReception, fmt.Sprintf("Pass complete for %d yards", yards))
}

// passYards draws a completion distance from a five-bucket distribution
// biased longer than a rush, then nudges a short gain up to the sticks
// when it would otherwise land just shy of the first down.
func passYards(rng *rand.Rand, distance uint8) int {
	var yards int
	switch r := rng.Float64(); {
	case r < 0.15:
		yards = randRange(rng, -3, 1)
	case r < 0.55:
		yards = randRange(rng, 1, 10)
	case r < 0.85:
		yards = randRange(rng, 10, 20)
	case r < 0.95:
		yards = randRange(rng, 20, 40)
	default:
		yards = randRange(rng, 40, 71)
	}

	if yards > 0 && yards < int(distance) && chance(rng, 0.5) {
		yards = int(distance)
	}
	return yards
}

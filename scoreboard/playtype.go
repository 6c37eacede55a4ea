package scoreboard

import (
	"encoding/json"
	"strings"

	"github.com/dgrantpete/scoreboard-sim/logging"
)

// PlayType is the closed play-type vocabulary the upstream feed adapter and
// the simulation engine's projection both produce. The numeric id mapping
// mirrors the upstream scoreboard feed's own (reverse-engineered) ids, so the
// two producers agree on vocabulary even though only one of them actually
// receives numeric ids over the wire.
type PlayType string

const (
	// Administrative / game flow.
	PlayEndPeriod        PlayType = "end_period"
	PlayEndHalf          PlayType = "end_half"
	PlayEndGame          PlayType = "end_game"
	PlayCoinToss         PlayType = "coin_toss"
	PlayTimeout          PlayType = "timeout"
	PlayOfficialTimeout  PlayType = "official_timeout"
	PlayTwoMinuteWarning PlayType = "two_minute_warning"

	// Passing.
	PlayPassReception               PlayType = "pass_reception"
	PlayPassIncompletion            PlayType = "pass_incompletion"
	PlayInterception                PlayType = "interception"
	PlayInterceptionReturnTouchdown PlayType = "interception_return_touchdown"
	PlayPassingTouchdown            PlayType = "passing_touchdown"
	PlaySack                        PlayType = "sack"

	// Rushing.
	PlayRush             PlayType = "rush"
	PlayRushingTouchdown PlayType = "rushing_touchdown"
	PlayTwoPointRush     PlayType = "two_point_rush"

	// Fumbles.
	PlayFumbleRecoveryOwn      PlayType = "fumble_recovery_own"
	PlayFumbleRecoveryOpponent PlayType = "fumble_recovery_opponent"

	// Field goals.
	PlayFieldGoalGood         PlayType = "field_goal_good"
	PlayFieldGoalMissed       PlayType = "field_goal_missed"
	PlayBlockedFieldGoal      PlayType = "blocked_field_goal"
	PlayMissedFieldGoalReturn PlayType = "missed_field_goal_return"

	// Punts.
	PlayPunt        PlayType = "punt"
	PlayBlockedPunt PlayType = "blocked_punt"

	// Kickoffs.
	PlayKickoff                 PlayType = "kickoff"
	PlayKickoffReturn           PlayType = "kickoff_return"
	PlayKickoffReturnTouchdown  PlayType = "kickoff_return_touchdown"

	// Extra points.
	PlayExtraPointGood   PlayType = "extra_point_good"
	PlayExtraPointMissed PlayType = "extra_point_missed"
	PlayTwoPointPass     PlayType = "two_point_pass"

	// Scoring / safety.
	PlaySafety PlayType = "safety"

	// Penalties.
	PlayPenalty PlayType = "penalty"

	// Unknown or unmapped.
	PlayUnknown PlayType = "unknown"
)

// espnIDToPlayType mirrors the upstream feed's (reverse-engineered) numeric
// play-type ids. Kept in one table so FromESPNID and ESPNID stay in sync.
var espnIDToPlayType = map[string]PlayType{
	"2":  PlayEndPeriod,
	"21": PlayTimeout,
	"65": PlayEndHalf,
	"66": PlayEndGame,
	"70": PlayCoinToss,
	"74": PlayOfficialTimeout,
	"75": PlayTwoMinuteWarning,

	"3":  PlayPassIncompletion,
	"24": PlayPassReception,
	"26": PlayInterception,
	"36": PlayInterceptionReturnTouchdown,
	"67": PlayPassingTouchdown,
	"7":  PlaySack,

	"5":  PlayRush,
	"16": PlayTwoPointRush,
	"68": PlayRushingTouchdown,

	"9":  PlayFumbleRecoveryOwn,
	"29": PlayFumbleRecoveryOpponent,

	"18": PlayBlockedFieldGoal,
	"40": PlayMissedFieldGoalReturn,
	"59": PlayFieldGoalGood,
	"60": PlayFieldGoalMissed,

	"17": PlayBlockedPunt,
	"52": PlayPunt,

	"12": PlayKickoffReturn,
	"32": PlayKickoffReturnTouchdown,
	"53": PlayKickoff,

	"15": PlayTwoPointPass,
	"61": PlayExtraPointGood,
	"62": PlayExtraPointMissed,

	"20": PlaySafety,

	"8": PlayPenalty,
}

var playTypeToESPNID = func() map[PlayType]string {
	m := make(map[PlayType]string, len(espnIDToPlayType))
	for id, pt := range espnIDToPlayType {
		m[pt] = id
	}
	return m
}()

// FromESPNID converts an upstream numeric play-type id to a PlayType. An
// unrecognized id logs a warning and maps to PlayUnknown; it never fails.
func FromESPNID(id string) PlayType {
	return FromESPNIDWithContext(id, "")
}

// FromESPNIDWithContext is FromESPNID with an optional play-text string
// included in the warning log for unrecognized ids.
func FromESPNIDWithContext(id string, text string) PlayType {
	if pt, ok := espnIDToPlayType[id]; ok {
		return pt
	}
	log := logging.Default().WithPrefix("scoreboard")
	if text != "" {
		log.Warnf("unknown upstream play type id %q encountered (text: %q)", id, text)
	} else {
		log.Warnf("unknown upstream play type id %q encountered", id)
	}
	return PlayUnknown
}

// ESPNID returns the upstream numeric id for this play type, if one exists.
func (p PlayType) ESPNID() (string, bool) {
	id, ok := playTypeToESPNID[p]
	return id, ok
}

// StopsClock reports whether this play type always stops the game clock,
// independent of any situational detail (out-of-bounds, etc).
func (p PlayType) StopsClock() bool {
	switch p {
	case PlayPassIncompletion, PlayInterception, PlayInterceptionReturnTouchdown,
		PlayTimeout, PlayOfficialTimeout, PlayTwoMinuteWarning,
		PlayEndPeriod, PlayEndHalf, PlayEndGame,
		PlayPassingTouchdown, PlayRushingTouchdown, PlayFieldGoalGood, PlaySafety,
		PlayKickoffReturnTouchdown,
		PlayPunt, PlayKickoff, PlayFieldGoalMissed, PlayBlockedFieldGoal,
		PlayBlockedPunt, PlayMissedFieldGoalReturn, PlayFumbleRecoveryOpponent,
		PlayPenalty,
		PlayExtraPointGood, PlayExtraPointMissed, PlayTwoPointRush, PlayTwoPointPass:
		return true
	default:
		return false
	}
}

// UnmarshalJSON accepts either a snake_case PlayType string or a bare
// upstream numeric id string, so externally-sourced payloads that still use
// the numeric vocabulary decode cleanly.
func (p *PlayType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*p = PlayUnknown
		return nil
	}
	if strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
		*p = FromESPNID(s)
		return nil
	}
	*p = PlayType(s)
	return nil
}

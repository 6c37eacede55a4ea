package feed

import (
	"encoding/json"
	"testing"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

func decodeEvent(t *testing.T, doc string) eventResponse {
	t.Helper()
	var ev eventResponse
	if err := json.Unmarshal([]byte(doc), &ev); err != nil {
		t.Fatalf("decoding fixture event: %v", err)
	}
	return ev
}

func TestNormalizeEventPregame(t *testing.T) {
	ev := decodeEvent(t, `{
		"id": "401",
		"date": "2026-09-10T20:00:00Z",
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "team": {"abbreviation": "KC"}, "score": "0"},
				{"homeAway": "away", "team": {"abbreviation": "PHI"}, "score": "0"}
			],
			"status": {"type": {"state": "pre"}}
		}]
	}`)

	resp, ok := normalizeEvent(ev)
	if !ok {
		t.Fatal("normalizeEvent reported failure for a well-formed pregame event")
	}
	if resp.State != scoreboard.StatePregame {
		t.Fatalf("state = %v, want pregame", resp.State)
	}
	if resp.Pregame.Home.Abbreviation != "KC" || resp.Pregame.Away.Abbreviation != "PHI" {
		t.Fatalf("unexpected teams: %+v", resp.Pregame)
	}
}

func TestNormalizeEventLiveWithSituationAndPlay(t *testing.T) {
	ev := decodeEvent(t, `{
		"id": "402",
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "team": {"abbreviation": "KC"}, "score": "14"},
				{"homeAway": "away", "team": {"abbreviation": "PHI"}, "score": "10"}
			],
			"status": {"type": {"state": "in"}, "period": 3, "displayClock": "7:12"},
			"situation": {"down": 2, "distance": 6, "yardLine": 85, "possession": "KC"},
			"plays": [{"type": {"id": "5", "text": "Rushes for 4 yards"}, "statYardage": 4}]
		}]
	}`)

	resp, ok := normalizeEvent(ev)
	if !ok {
		t.Fatal("normalizeEvent reported failure for a well-formed live event")
	}
	if resp.State != scoreboard.StateLive {
		t.Fatalf("state = %v, want live", resp.State)
	}
	if resp.Live.Quarter != scoreboard.QuarterThird {
		t.Fatalf("quarter = %v, want third", resp.Live.Quarter)
	}
	if resp.Live.Situation == nil {
		t.Fatal("expected a situation to be populated")
	}
	if !resp.Live.Situation.RedZone {
		t.Fatal("yard line 85 should be flagged red zone")
	}
	if resp.Live.Situation.Possession != scoreboard.PossessionHome {
		t.Fatalf("possession = %v, want home", resp.Live.Situation.Possession)
	}
	if resp.Live.LastPlay == nil || resp.Live.LastPlay.PlayType != scoreboard.PlayRush {
		t.Fatalf("last play = %+v, want rush", resp.Live.LastPlay)
	}
}

func TestNormalizeEventFinalWithOvertimeWinner(t *testing.T) {
	ev := decodeEvent(t, `{
		"id": "403",
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "team": {"abbreviation": "KC"}, "score": "27"},
				{"homeAway": "away", "team": {"abbreviation": "PHI"}, "score": "24"}
			],
			"status": {"type": {"state": "post"}, "period": 5, "completed": true}
		}]
	}`)

	resp, ok := normalizeEvent(ev)
	if !ok {
		t.Fatal("normalizeEvent reported failure for a well-formed final event")
	}
	if resp.State != scoreboard.StateFinal {
		t.Fatalf("state = %v, want final", resp.State)
	}
	if resp.Final.Status != scoreboard.StatusFinalOT {
		t.Fatalf("status = %v, want final/OT", resp.Final.Status)
	}
	if resp.Final.Winner != scoreboard.WinnerHome {
		t.Fatalf("winner = %v, want home", resp.Final.Winner)
	}
}

func TestNormalizeEventMissingCompetitorsFails(t *testing.T) {
	ev := decodeEvent(t, `{"id": "404"}`)
	if _, ok := normalizeEvent(ev); ok {
		t.Fatal("normalizeEvent should fail when competitions are absent")
	}
}

func TestNormalizeSkipsEventsItCannotParse(t *testing.T) {
	doc := &scoreboardResponse{Events: []eventResponse{decodeEvent(t, `{"id": "bad"}`)}}
	if got := Normalize(doc); len(got) != 0 {
		t.Fatalf("Normalize should have skipped an unparseable event, got %d results", len(got))
	}
}

func TestFromESPNIDMapsCommonUpstreamIDs(t *testing.T) {
	for id, want := range map[string]scoreboard.PlayType{
		"5":  scoreboard.PlayRush,
		"24": scoreboard.PlayPassReception,
		"59": scoreboard.PlayFieldGoalGood,
		"52": scoreboard.PlayPunt,
		"53": scoreboard.PlayKickoff,
		"20": scoreboard.PlaySafety,
	} {
		if got := scoreboard.FromESPNIDWithContext(id, "fixture"); got != want {
			t.Errorf("FromESPNIDWithContext(%q) = %q, want %q", id, got, want)
		}
	}
}

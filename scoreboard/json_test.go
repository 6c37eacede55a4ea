package scoreboard

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGameResponseRoundTripPregame(t *testing.T) {
	venue := "Arrowhead Stadium"
	original := GameResponse{
		State: StatePregame,
		Pregame: &PregameGame{
			EventID:   "sim_1",
			Home:      Team{Abbreviation: "KC", Color: Color{R: 227, G: 24, B: 55}},
			Away:      Team{Abbreviation: "PHI", Color: Color{R: 0, G: 76, B: 84}},
			StartTime: "2026-09-10T20:00:00Z",
			Venue:     &venue,
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded GameResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGameResponseRoundTripLiveWithSituation(t *testing.T) {
	text := "Rushes for 4 yards"
	original := GameResponse{
		State: StateLive,
		Live: &LiveGame{
			EventID: "sim_2",
			Home:    TeamWithScore{Abbreviation: "KC", Score: 14, Timeouts: 3},
			Away:    TeamWithScore{Abbreviation: "PHI", Score: 10, Timeouts: 2},
			Quarter: QuarterThird,
			Clock:   "7:12",
			Situation: &Situation{
				Down:       DownSecond,
				Distance:   6,
				YardLine:   42,
				Possession: PossessionHome,
			},
			LastPlay: &LastPlay{PlayType: PlayRush, Text: &text},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded GameResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGameResponseMarshalUnsetStateErrors(t *testing.T) {
	if _, err := json.Marshal(GameResponse{}); err == nil {
		t.Fatal("expected an error marshaling a GameResponse with no state set")
	}
}

func TestGameResponseUnmarshalUnrecognizedStateErrors(t *testing.T) {
	var g GameResponse
	err := json.Unmarshal([]byte(`{"state":"bogus"}`), &g)
	if err == nil {
		t.Fatal("expected an error for an unrecognized state")
	}
}

package scoreboard

import "testing"

func TestFromESPNIDCoversEveryKnownID(t *testing.T) {
	for id, want := range espnIDToPlayType {
		got := FromESPNID(id)
		if got != want {
			t.Errorf("FromESPNID(%q) = %q, want %q", id, got, want)
		}
		backID, ok := got.ESPNID()
		if !ok {
			t.Errorf("PlayType %q has no reverse ESPNID mapping", got)
			continue
		}
		if backID != id {
			t.Errorf("round trip id mismatch: %q -> %q -> %q", id, got, backID)
		}
	}
}

func TestFromESPNIDUnrecognizedFallsBackToUnknown(t *testing.T) {
	if got := FromESPNID("999999"); got != PlayUnknown {
		t.Fatalf("FromESPNID(unrecognized) = %q, want unknown", got)
	}
}

func TestFromESPNIDWithContextUnrecognizedFallsBackToUnknown(t *testing.T) {
	if got := FromESPNIDWithContext("999999", "some trick play"); got != PlayUnknown {
		t.Fatalf("FromESPNIDWithContext(unrecognized) = %q, want unknown", got)
	}
}

func TestPlayTypeUnmarshalJSONAcceptsNumericID(t *testing.T) {
	var p PlayType
	if err := p.UnmarshalJSON([]byte(`"59"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if p != PlayFieldGoalGood {
		t.Fatalf("got %q, want field_goal_good", p)
	}
}

func TestPlayTypeUnmarshalJSONAcceptsSnakeCase(t *testing.T) {
	var p PlayType
	if err := p.UnmarshalJSON([]byte(`"rush"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if p != PlayRush {
		t.Fatalf("got %q, want rush", p)
	}
}

func TestPlayTypeUnmarshalJSONEmptyStringIsUnknown(t *testing.T) {
	var p PlayType
	if err := p.UnmarshalJSON([]byte(`""`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if p != PlayUnknown {
		t.Fatalf("got %q, want unknown", p)
	}
}

func TestStopsClockDisagreesBetweenRushAndPassingTouchdown(t *testing.T) {
	if PlayRush.StopsClock() {
		t.Error("an ordinary rush should not stop the clock")
	}
	if !PlayPassingTouchdown.StopsClock() {
		t.Error("a passing touchdown should stop the clock")
	}
}

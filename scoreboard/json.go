package scoreboard

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON flattens the selected variant's fields alongside the "state"
// discriminator, producing a single flat object as described in spec §6.
func (g GameResponse) MarshalJSON() ([]byte, error) {
	switch g.State {
	case StatePregame:
		return marshalTagged(g.State, g.Pregame)
	case StateLive:
		return marshalTagged(g.State, g.Live)
	case StateFinal:
		return marshalTagged(g.State, g.Final)
	default:
		return nil, fmt.Errorf("scoreboard: GameResponse has no state set")
	}
}

// UnmarshalJSON restores a GameResponse from its flattened wire form.
func (g *GameResponse) UnmarshalJSON(data []byte) error {
	var tag struct {
		State State `json:"state"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag.State {
	case StatePregame:
		var p PregameGame
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*g = GameResponse{State: StatePregame, Pregame: &p}
	case StateLive:
		var l LiveGame
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*g = GameResponse{State: StateLive, Live: &l}
	case StateFinal:
		var f FinalGame
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*g = GameResponse{State: StateFinal, Final: &f}
	default:
		return fmt.Errorf("scoreboard: unrecognized state %q", tag.State)
	}
	return nil
}

// marshalTagged marshals v to a JSON object, then merges in the "state" key.
// Variant structs never define a `state` field themselves, so there is no
// collision to resolve.
func marshalTagged(state State, v any) ([]byte, error) {
	fields, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(fields, &raw); err != nil {
		return nil, err
	}
	stateBytes, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	raw["state"] = stateBytes
	return json.Marshal(raw)
}

package simulation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// createGameRequestWire is the flat JSON body POST /api/mock/games
// accepts: every optional field across all three phases, discriminated by
// "state" (spec §4.8, §8 scenarios 1-5).
type createGameRequestWire struct {
	State scoreboard.State `json:"state"`

	HomeTeam   string  `json:"home_team,omitempty"`
	AwayTeam   string  `json:"away_team,omitempty"`
	HomeRecord *string `json:"home_record,omitempty"`
	AwayRecord *string `json:"away_record,omitempty"`

	StartTime *string `json:"start_time,omitempty"`
	Venue     string  `json:"venue,omitempty"`
	Broadcast string  `json:"broadcast,omitempty"`

	WeatherTemp        *int16  `json:"weather_temp,omitempty"`
	WeatherDescription *string `json:"weather_description,omitempty"`

	Seed      *uint64  `json:"seed,omitempty"`
	TimeScale *float64 `json:"time_scale,omitempty"`

	HomeScore *uint8              `json:"home_score,omitempty"`
	AwayScore *uint8              `json:"away_score,omitempty"`
	Quarter   *scoreboard.Quarter `json:"quarter,omitempty"`
	Clock     *string             `json:"clock,omitempty"`

	Down         *scoreboard.Down       `json:"down,omitempty"`
	Distance     *uint8                 `json:"distance,omitempty"`
	YardLine     *uint8                 `json:"yard_line,omitempty"`
	Possession   *scoreboard.Possession `json:"possession,omitempty"`
	HomeTimeouts *uint8                 `json:"home_timeouts,omitempty"`
	AwayTimeouts *uint8                 `json:"away_timeouts,omitempty"`

	Overtime *bool `json:"overtime,omitempty"`
}

func (w createGameRequestWire) teamOption(abbr string, record *string) *TeamOption {
	if abbr == "" && record == nil {
		return nil
	}
	return &TeamOption{Abbreviation: abbr, Record: record}
}

func (w createGameRequestWire) weatherOption() *WeatherOption {
	if w.WeatherTemp == nil && w.WeatherDescription == nil {
		return nil
	}
	return &WeatherOption{Temp: w.WeatherTemp, Description: w.WeatherDescription}
}

func (w createGameRequestWire) startTime() (*time.Time, error) {
	if w.StartTime == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time must be RFC 3339: %w", err)
	}
	t = t.UTC()
	return &t, nil
}

// ParseCreateGameRequest decodes the flat JSON body of POST
// /api/mock/games into a CreateGameRequest, per spec §4.8.
func ParseCreateGameRequest(data []byte) (CreateGameRequest, error) {
	var w createGameRequestWire
	if err := json.Unmarshal(data, &w); err != nil {
		return CreateGameRequest{}, err
	}

	home := w.teamOption(w.HomeTeam, w.HomeRecord)
	away := w.teamOption(w.AwayTeam, w.AwayRecord)

	switch w.State {
	case scoreboard.StatePregame:
		start, err := w.startTime()
		if err != nil {
			return CreateGameRequest{}, err
		}
		return CreateGameRequest{
			State: scoreboard.StatePregame,
			Pregame: &PregameOptions{
				Home:      home,
				Away:      away,
				StartTime: start,
				Venue:     w.Venue,
				Broadcast: w.Broadcast,
				Weather:   w.weatherOption(),
				Seed:      w.Seed,
				TimeScale: w.TimeScale,
			},
		}, nil

	case scoreboard.StateLive:
		return CreateGameRequest{
			State: scoreboard.StateLive,
			Live: &LiveOptions{
				Home:         home,
				Away:         away,
				HomeScore:    w.HomeScore,
				AwayScore:    w.AwayScore,
				Quarter:      w.Quarter,
				Clock:        w.Clock,
				Down:         w.Down,
				Distance:     w.Distance,
				YardLine:     w.YardLine,
				Possession:   w.Possession,
				HomeTimeouts: w.HomeTimeouts,
				AwayTimeouts: w.AwayTimeouts,
				Weather:      w.weatherOption(),
				Seed:         w.Seed,
				TimeScale:    w.TimeScale,
			},
		}, nil

	case scoreboard.StateFinal:
		return CreateGameRequest{
			State: scoreboard.StateFinal,
			Final: &FinalOptions{
				Home:      home,
				Away:      away,
				HomeScore: w.HomeScore,
				AwayScore: w.AwayScore,
				Overtime:  w.Overtime,
			},
		}, nil

	default:
		return CreateGameRequest{}, fmt.Errorf("unrecognized state %q", w.State)
	}
}

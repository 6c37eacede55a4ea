// Package feed normalizes a (stubbed) upstream sports-data scoreboard feed
// into the same scoreboard.GameResponse schema the simulation engine's
// projection emits (spec §1, §6 "Upstream feed adapter"). It never
// touches simulation.GameRepository; it is an independent read path.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// competitorResponse mirrors one side of an ESPN-style scoreboard
// competitor entry.
type competitorResponse struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
		Color        string `json:"color"`
	} `json:"team"`
	Score string `json:"score"`
}

// playResponse mirrors one play entry in an ESPN-style drive feed: a
// numeric type id plus free text, which FromESPNID maps into the shared
// PlayType vocabulary.
type playResponse struct {
	Type struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"type"`
	YardsGained int `json:"statYardage"`
}

// eventResponse mirrors one ESPN-style scoreboard event (a single game).
type eventResponse struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Competitions []struct {
		Competitors []competitorResponse `json:"competitors"`
		Status      struct {
			Type struct {
				State string `json:"state"` // "pre", "in", "post"
			} `json:"type"`
			Period    int    `json:"period"`
			Clock     string `json:"displayClock"`
			Completed bool   `json:"completed"`
		} `json:"status"`
		Situation struct {
			Down         int    `json:"down"`
			Distance     int    `json:"distance"`
			YardLine     int    `json:"yardLine"`
			Possession   string `json:"possession"`
			LastPlayText string `json:"lastPlayText"`
		} `json:"situation"`
		Plays []playResponse `json:"plays"`
	} `json:"competitions"`
}

// scoreboardResponse is the top-level ESPN-style scoreboard document.
type scoreboardResponse struct {
	Events []eventResponse `json:"events"`
}

// Client fetches the upstream scoreboard feed.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a Client against baseURL (the upstream scoreboard
// endpoint).
func NewClient(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: baseURL,
	}
}

// FetchScoreboard retrieves and decodes the current scoreboard document.
func (c *Client) FetchScoreboard(ctx context.Context) (*scoreboardResponse, error) {
	var body scoreboardResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch scoreboard: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed: upstream returned %s", resp.Status())
	}
	return &body, nil
}

// Normalize converts every event in a scoreboard document into the
// shared scoreboard.GameResponse shape, using the same PlayType
// vocabulary the simulation engine's projection emits (spec §6).
func Normalize(doc *scoreboardResponse) []scoreboard.GameResponse {
	out := make([]scoreboard.GameResponse, 0, len(doc.Events))
	for _, ev := range doc.Events {
		if resp, ok := normalizeEvent(ev); ok {
			out = append(out, resp)
		}
	}
	return out
}

func normalizeEvent(ev eventResponse) (scoreboard.GameResponse, bool) {
	if len(ev.Competitions) == 0 {
		return scoreboard.GameResponse{}, false
	}
	comp := ev.Competitions[0]

	home, away, ok := splitCompetitors(comp.Competitors)
	if !ok {
		return scoreboard.GameResponse{}, false
	}

	switch comp.Status.Type.State {
	case "pre":
		pg := scoreboard.PregameGame{
			EventID:   ev.ID,
			Home:      scoreboard.Team{Abbreviation: home.Team.Abbreviation},
			Away:      scoreboard.Team{Abbreviation: away.Team.Abbreviation},
			StartTime: ev.Date,
		}
		return scoreboard.GameResponse{State: scoreboard.StatePregame, Pregame: &pg}, true

	case "in":
		var lastPlay *scoreboard.LastPlay
		if n := len(comp.Plays); n > 0 {
			p := comp.Plays[n-1]
			pt := scoreboard.FromESPNIDWithContext(p.Type.ID, p.Type.Text)
			text := p.Type.Text
			lastPlay = &scoreboard.LastPlay{PlayType: pt, Text: &text}
		}

		lg := scoreboard.LiveGame{
			EventID:  ev.ID,
			Home:     scoreboard.TeamWithScore{Abbreviation: home.Team.Abbreviation, Score: parseScore(home.Score)},
			Away:     scoreboard.TeamWithScore{Abbreviation: away.Team.Abbreviation, Score: parseScore(away.Score)},
			Quarter:  quarterFromPeriod(comp.Status.Period),
			Clock:    comp.Status.Clock,
			LastPlay: lastPlay,
		}
		if comp.Situation.Down > 0 {
			lg.Situation = &scoreboard.Situation{
				Down:       downFromNumber(comp.Situation.Down),
				Distance:   uint8(comp.Situation.Distance),
				YardLine:   uint8(comp.Situation.YardLine),
				Possession: possessionFromAbbreviation(comp.Situation.Possession, home.Team.Abbreviation),
				RedZone:    comp.Situation.YardLine >= 80,
			}
		}
		return scoreboard.GameResponse{State: scoreboard.StateLive, Live: &lg}, true

	default: // "post"
		homeScore, awayScore := parseScore(home.Score), parseScore(away.Score)
		winner := scoreboard.WinnerTie
		if homeScore > awayScore {
			winner = scoreboard.WinnerHome
		} else if awayScore > homeScore {
			winner = scoreboard.WinnerAway
		}
		status := scoreboard.StatusFinal
		if comp.Status.Period > 4 {
			status = scoreboard.StatusFinalOT
		}
		fg := scoreboard.FinalGame{
			EventID: ev.ID,
			Home:    scoreboard.TeamWithScore{Abbreviation: home.Team.Abbreviation, Score: homeScore},
			Away:    scoreboard.TeamWithScore{Abbreviation: away.Team.Abbreviation, Score: awayScore},
			Status:  status,
			Winner:  winner,
		}
		return scoreboard.GameResponse{State: scoreboard.StateFinal, Final: &fg}, true
	}
}

func splitCompetitors(cs []competitorResponse) (home, away competitorResponse, ok bool) {
	var h, a *competitorResponse
	for i := range cs {
		switch cs[i].HomeAway {
		case "home":
			h = &cs[i]
		case "away":
			a = &cs[i]
		}
	}
	if h == nil || a == nil {
		return competitorResponse{}, competitorResponse{}, false
	}
	return *h, *a, true
}

func parseScore(s string) uint8 {
	var n int
	fmt.Sscanf(s, "%d", &n)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

func quarterFromPeriod(period int) scoreboard.Quarter {
	switch period {
	case 1:
		return scoreboard.QuarterFirst
	case 2:
		return scoreboard.QuarterSecond
	case 3:
		return scoreboard.QuarterThird
	case 4:
		return scoreboard.QuarterFourth
	case 5:
		return scoreboard.QuarterOvertime
	default:
		return scoreboard.QuarterDoubleOvertime
	}
}

func downFromNumber(n int) scoreboard.Down {
	switch n {
	case 1:
		return scoreboard.DownFirst
	case 2:
		return scoreboard.DownSecond
	case 3:
		return scoreboard.DownThird
	default:
		return scoreboard.DownFourth
	}
}

func possessionFromAbbreviation(possessionAbbr, homeAbbr string) scoreboard.Possession {
	if possessionAbbr == homeAbbr {
		return scoreboard.PossessionHome
	}
	return scoreboard.PossessionAway
}

// Package teams holds the static NFL team catalog (C1): an abbreviation to
// primary-colour table and random matchup selection for the mock simulation
// engine.
package teams

import (
	"math/rand/v2"
	"strings"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// Team is a catalog entry: an uppercase abbreviation and the team's primary
// RGB colour.
type Team struct {
	Abbreviation string
	Color        scoreboard.Color
}

// All holds all 32 NFL teams with their primary colours.
var All = []Team{
	// AFC East
	{"BUF", scoreboard.Color{R: 0, G: 51, B: 141}},
	{"MIA", scoreboard.Color{R: 0, G: 142, B: 151}},
	{"NE", scoreboard.Color{R: 0, G: 34, B: 68}},
	{"NYJ", scoreboard.Color{R: 18, G: 87, B: 64}},
	// AFC North
	{"BAL", scoreboard.Color{R: 36, G: 23, B: 115}},
	{"CIN", scoreboard.Color{R: 251, G: 79, B: 20}},
	{"CLE", scoreboard.Color{R: 49, G: 29, B: 0}},
	{"PIT", scoreboard.Color{R: 255, G: 182, B: 18}},
	// AFC South
	{"HOU", scoreboard.Color{R: 3, G: 32, B: 47}},
	{"IND", scoreboard.Color{R: 0, G: 44, B: 95}},
	{"JAX", scoreboard.Color{R: 16, G: 24, B: 32}},
	{"TEN", scoreboard.Color{R: 12, G: 35, B: 64}},
	// AFC West
	{"DEN", scoreboard.Color{R: 251, G: 79, B: 20}},
	{"KC", scoreboard.Color{R: 227, G: 24, B: 55}},
	{"LV", scoreboard.Color{R: 0, G: 0, B: 0}},
	{"LAC", scoreboard.Color{R: 0, G: 128, B: 198}},
	// NFC East
	{"DAL", scoreboard.Color{R: 0, G: 53, B: 148}},
	{"NYG", scoreboard.Color{R: 1, G: 35, B: 82}},
	{"PHI", scoreboard.Color{R: 0, G: 76, B: 84}},
	{"WSH", scoreboard.Color{R: 90, G: 20, B: 20}},
	// NFC North
	{"CHI", scoreboard.Color{R: 11, G: 22, B: 42}},
	{"DET", scoreboard.Color{R: 0, G: 118, B: 182}},
	{"GB", scoreboard.Color{R: 24, G: 48, B: 40}},
	{"MIN", scoreboard.Color{R: 79, G: 38, B: 131}},
	// NFC South
	{"ATL", scoreboard.Color{R: 167, G: 25, B: 48}},
	{"CAR", scoreboard.Color{R: 0, G: 133, B: 202}},
	{"NO", scoreboard.Color{R: 211, G: 188, B: 141}},
	{"TB", scoreboard.Color{R: 213, G: 10, B: 10}},
	// NFC West
	{"ARI", scoreboard.Color{R: 151, G: 35, B: 63}},
	{"LAR", scoreboard.Color{R: 0, G: 53, B: 148}},
	{"SF", scoreboard.Color{R: 170, G: 0, B: 0}},
	{"SEA", scoreboard.Color{R: 0, G: 34, B: 68}},
}

// Lookup finds a team by case-insensitive abbreviation.
func Lookup(abbreviation string) (Team, bool) {
	upper := strings.ToUpper(abbreviation)
	for _, t := range All {
		if t.Abbreviation == upper {
			return t, true
		}
	}
	return Team{}, false
}

// RandomMatchup shuffles the catalog and returns the first two distinct
// entries as a (home, away) pair.
func RandomMatchup(rng *rand.Rand) (home, away Team) {
	indices := rng.Perm(len(All))
	return All[indices[0]], All[indices[1]]
}

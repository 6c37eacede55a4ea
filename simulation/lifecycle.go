package simulation

import "time"

// tick advances g in place to reflect now: pregame becomes live once its
// start time has passed, live advances play-by-play and becomes final once
// the game ends. It is the only place phase transitions happen, and it is
// always called with the repository's write lock held (spec §4.5, §5).
func tick(g *Game, now time.Time) {
	if pre := g.State.Pregame; pre != nil {
		if !pre.ShouldStart(now) {
			return
		}
		live := pre.toLiveState(now)
		g.State = GameState{Live: live}
	}

	if live := g.State.Live; live != nil {
		if Advance(live, now) {
			g.State = GameState{Final: live.toFinalState()}
		}
	}
}

// Package game implements the exercise game core.
package game

// scoreboard accumulates score, combo and catch statistics for one session.
// The combo multiplier stays within [1, 5] and the score never decreases.
type scoreboard struct {
	score       int
	combo       int
	consecutive int
	caught      int
	missed      int
	maxCombo    int
}

func (b *scoreboard) reset() {
	b.score = 0
	b.combo = 1
	b.consecutive = 0
	b.caught = 0
	b.missed = 0
	b.maxCombo = 1
}

// catch scores a caught object at the current multiplier and reports whether
// the multiplier rose. Points are computed before any combo change, so the
// raise takes effect from the next catch on.
func (b *scoreboard) catch(cat Category) (points int, comboUp bool) {
	points = cat.Points * b.combo
	b.score += points
	b.caught++
	b.consecutive++
	if b.consecutive >= 3 && b.combo < 5 {
		b.combo++
		comboUp = true
		if b.combo > b.maxCombo {
			b.maxCombo = b.combo
		}
	}
	return points, comboUp
}

// miss ends the streak and drops the multiplier back to 1.
func (b *scoreboard) miss() {
	b.missed++
	b.consecutive = 0
	b.combo = 1
}

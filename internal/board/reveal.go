package board

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

// Reveal opens the cell at (x, y).
//
// Opening a mine loses the game. Opening a cell with no neighbouring mines
// opens its neighbours too, and so on across the whole empty region.
// Revealing an already open cell whose flagged neighbours match its count
// opens every other covered neighbour (a chord). An open empty cell opens
// its covered neighbours however many of them are flagged. Flagged cells are never
// opened. Nothing happens once the game is over.
func (b *Board) Reveal(x, y int) {
	if b.state.Terminal() || !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	if b.flagged[i] {
		return
	}

	var todo deque.Deque[int]
	if b.revealed[i] {
		if b.counts[i] == 0 || b.flaggedAround(i) == int(b.counts[i]) {
			b.pushCovered(&todo, i)
		}
	} else {
		todo.PushBack(i)
	}

	for todo.Len() != 0 {
		j := todo.PopFront()
		/* queued twice, or opened through another path meanwhile */
		if b.revealed[j] || b.flagged[j] {
			continue
		}
		if b.counts[j] == Mine {
			b.state = Lose
			b.exploded = j
			Log.WithFields(logrus.Fields{
				"x": j % b.Width, "y": j / b.Width,
			}).Debug("mine hit")
			return
		}
		b.revealed[j] = true
		b.nrevealed++
		if b.nrevealed == b.SafeCells() {
			b.state = Win
			Log.WithField("revealed", b.nrevealed).Debug("all safe cells revealed")
			return
		}
		if b.counts[j] == 0 {
			b.pushCovered(&todo, j)
		}
	}
}

// ToggleFlag marks or unmarks a covered cell. Open cells cannot be flagged.
func (b *Board) ToggleFlag(x, y int) {
	if b.state.Terminal() || !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	if b.revealed[i] {
		return
	}
	b.flagged[i] = !b.flagged[i]
	if b.flagged[i] {
		b.nflagged++
	} else {
		b.nflagged--
	}
}

func (b *Board) flaggedAround(i int) (n int) {
	for _, j := range b.neighbors(i) {
		if b.flagged[j] {
			n++
		}
	}
	return
}

func (b *Board) pushCovered(todo *deque.Deque[int], i int) {
	for _, j := range b.neighbors(i) {
		if !b.revealed[j] && !b.flagged[j] {
			todo.PushBack(j)
		}
	}
}

// Package solver plays minesweeper without guessing. It only looks at what
// a player could see: open cells, their counts and its own flags.
package solver

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

var Log = logrus.New()

// Game is the player's view of a board. [*board.Board] satisfies it.
type Game interface {
	Reveal(x, y int)
	ToggleFlag(x, y int)
	IsRevealed(x, y int) bool
	IsFlagged(x, y int) bool
	MineCount(x, y int) int
	State() board.GameState
}

type Outcome int

const (
	Stalled Outcome = iota
	Solved
	Exploded
)

func (o Outcome) String() string {
	switch o {
	case Stalled:
		return "stalled"
	case Solved:
		return "solved"
	case Exploded:
		return "exploded"
	default:
		return "unknown"
	}
}

type Solver struct {
	game   Game
	params board.Params

	inspectQueue deque.Deque[int]
	queued       []bool
	moves        int
}

func New(g Game, params board.Params) *Solver {
	return &Solver{
		game:   g,
		params: params,
		queued: make([]bool, params.CellCount()),
	}
}

// Moves counts reveals, chords and flags the solver has made.
func (s *Solver) Moves() int {
	return s.moves
}

// Solve makes safe moves until the game ends or nothing more can be
// deduced. At least one cell should already be open.
func (s *Solver) Solve() Outcome {
	for s.game.State() == board.Playing {
		s.enqueueFrontier()
		progress := s.processInspectQueue()
		if !progress && s.game.State() == board.Playing {
			progress = s.countRemaining()
		}
		if !progress {
			break
		}
	}

	switch s.game.State() {
	case board.Win:
		Log.WithField("moves", s.moves).Debug("solved")
		return Solved
	case board.Lose:
		Log.WithField("moves", s.moves).Error("opened a mined cell while solving")
		return Exploded
	default:
		Log.WithField("moves", s.moves).Debug("stalled")
		return Stalled
	}
}

func (s *Solver) coords(i int) (x, y int) {
	return i % s.params.Width, i / s.params.Width
}

func (s *Solver) neighborRange(i, dist int) (fromX, toX, fromY, toY int) {
	x, y := s.coords(i)
	fromX, toX = max(0, x-dist), min(x+dist, s.params.Width-1)
	fromY, toY = max(0, y-dist), min(y+dist, s.params.Height-1)
	return
}

func (s *Solver) covered(i int) bool {
	x, y := s.coords(i)
	return !s.game.IsRevealed(x, y) && !s.game.IsFlagged(x, y)
}

// untouched lists covered unflagged neighbours of i and counts its flags.
func (s *Solver) untouched(i int) (cells []int, flags int) {
	fromX, toX, fromY, toY := s.neighborRange(i, 1)
	for y := fromY; y <= toY; y++ {
		for x := fromX; x <= toX; x++ {
			j := y*s.params.Width + x
			switch {
			case j == i || s.game.IsRevealed(x, y):
			case s.game.IsFlagged(x, y):
				flags++
			default:
				cells = append(cells, j)
			}
		}
	}
	return
}

// numbered reports whether i is open and touches at least one mine.
func (s *Solver) numbered(i int) bool {
	x, y := s.coords(i)
	return s.game.IsRevealed(x, y) && s.game.MineCount(x, y) > 0
}

func (s *Solver) enqueueFrontier() {
	for i := range s.params.CellCount() {
		if s.queued[i] || !s.numbered(i) {
			continue
		}
		if cells, _ := s.untouched(i); len(cells) > 0 {
			s.queued[i] = true
			s.inspectQueue.PushBack(i)
		}
	}
}

func (s *Solver) processInspectQueue() (progress bool) {
	for s.inspectQueue.Len() != 0 {
		i := s.inspectQueue.PopFront()
		s.queued[i] = false
		if s.inspectCell(i) {
			progress = true
		}
		if s.game.State() != board.Playing {
			s.inspectQueue.Clear()
			clear(s.queued)
			return
		}
	}
	return
}

func (s *Solver) open(i int) {
	s.moves++
	s.game.Reveal(s.coords(i))
}

func (s *Solver) flag(i int) {
	s.moves++
	s.game.ToggleFlag(s.coords(i))
}

func (s *Solver) inspectCell(i int) bool {
	if !s.numbered(i) {
		return false
	}
	untouched, flags := s.untouched(i)
	if len(untouched) == 0 {
		return false
	}
	x, y := s.coords(i)
	remaining := s.game.MineCount(x, y) - flags

	if remaining == 0 {
		// every mine around is flagged: chord
		s.open(i)
		return true
	}
	if remaining == len(untouched) {
		for _, j := range untouched {
			s.flag(j)
		}
		return true
	}

	// compare with open cells up to two steps away whose covered
	// neighbours include all of ours
	fromX, toX, fromY, toY := s.neighborRange(i, 2)
	for yy := fromY; yy <= toY; yy++ {
		for xx := fromX; xx <= toX; xx++ {
			j := yy*s.params.Width + xx
			if j == i || !s.numbered(j) {
				continue
			}
			other, otherFlags := s.untouched(j)
			if len(Intersect(untouched, other)) != len(untouched) {
				continue
			}
			rest := Complement(untouched, other)
			if len(rest) == 0 {
				continue
			}
			restMines := s.game.MineCount(xx, yy) - otherFlags - remaining
			switch restMines {
			case 0:
				for _, k := range rest {
					s.open(k)
				}
				return true
			case len(rest):
				for _, k := range rest {
					s.flag(k)
				}
				return true
			}
		}
	}
	return false
}

// countRemaining uses the total mine count: once every mine is flagged the
// rest is safe, and if only mines are left covered they can all be flagged.
func (s *Solver) countRemaining() bool {
	var covered []int
	flags := 0
	for i := range s.params.CellCount() {
		x, y := s.coords(i)
		if s.game.IsFlagged(x, y) {
			flags++
		} else if s.covered(i) {
			covered = append(covered, i)
		}
	}
	if len(covered) == 0 {
		return false
	}

	remaining := s.params.MineCount - flags
	switch remaining {
	case 0:
		for _, i := range covered {
			if s.covered(i) {
				s.open(i)
			}
		}
		return true
	case len(covered):
		for _, i := range covered {
			s.flag(i)
		}
		return true
	}
	return false
}

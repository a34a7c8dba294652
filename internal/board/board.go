// Package board implements the rules of a minesweeper game: mine placement,
// neighbour counts, cascading reveals, chording, flags and win/lose
// detection.
//
// A [Board] is owned by a single caller and is not safe for concurrent use.
// All coordinate arguments are bounds-checked: queries answer with a zero
// value and commands do nothing when given a point outside the grid.
package board

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Mine is the value [Board.MineCount] reports for a mined cell.
const Mine = -1

type Point struct {
	X, Y int
}

type GameState int8

const (
	Playing GameState = iota
	Win
	Lose
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves are accepted.
func (s GameState) Terminal() bool {
	return s == Win || s == Lose
}

type Board struct {
	Params

	counts   []int8 /* neighbour mine counts, Mine for mined cells */
	revealed []bool
	flagged  []bool

	nrevealed int
	nflagged  int
	exploded  int /* index of the mine that ended the game, -1 otherwise */

	state GameState
}

// New places p.MineCount mines uniformly at random.
func New(p Params, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(p)
	for _, i := range p.placeMines(r) {
		b.setMine(i)
	}
	b.logGenerated()
	return b, nil
}

// FromMines builds a board with mines at the given points. Duplicates are
// ignored; points outside the grid are rejected.
func FromMines(width, height int, mines []Point) (*Board, error) {
	p := Params{Width: width, Height: height}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seen := make([]bool, p.CellCount())
	indices := make([]int, 0, len(mines))
	for _, m := range mines {
		if !p.ValidatePosition(m.X, m.Y) {
			return nil, fmt.Errorf("mine at %d:%d is outside the %dx%d board: %w",
				m.X, m.Y, width, height, ErrInvalidParams)
		}
		i := m.Y*width + m.X
		if !seen[i] {
			seen[i] = true
			indices = append(indices, i)
		}
	}
	p.MineCount = len(indices)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(p)
	for _, i := range indices {
		b.setMine(i)
	}
	b.logGenerated()
	return b, nil
}

func newBoard(p Params) *Board {
	n := p.CellCount()
	return &Board{
		Params:   p,
		counts:   make([]int8, n),
		revealed: make([]bool, n),
		flagged:  make([]bool, n),
		exploded: -1,
		state:    Playing,
	}
}

func (b *Board) setMine(i int) {
	b.counts[i] = Mine
	for _, j := range b.neighbors(i) {
		if b.counts[j] != Mine {
			b.counts[j]++
		}
	}
}

func (b *Board) logGenerated() {
	Log.WithFields(logrus.Fields{
		"width":       b.Width,
		"height":      b.Height,
		"mines":       b.Params.MineCount,
		"fingerprint": b.Fingerprint(),
	}).Debug("board generated")
}

func (b *Board) index(x, y int) int {
	return y*b.Width + x
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.Width, Y: i / b.Width}
}

func (b *Board) InBounds(x, y int) bool {
	return b.ValidatePosition(x, y)
}

// neighbors returns the indices of the up to 8 cells surrounding i.
func (b *Board) neighbors(i int) []int {
	x, y := i%b.Width, i/b.Width
	out := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				out = append(out, (y+dy)*b.Width+(x+dx))
			}
		}
	}
	return out
}

// Neighbors lists the in-bounds points surrounding (x, y).
func (b *Board) Neighbors(x, y int) []Point {
	if !b.InBounds(x, y) {
		return nil
	}
	idx := b.neighbors(b.index(x, y))
	out := make([]Point, len(idx))
	for k, j := range idx {
		out[k] = b.point(j)
	}
	return out
}

func (b *Board) IsMine(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.counts[b.index(x, y)] == Mine
}

func (b *Board) IsFlagged(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.flagged[b.index(x, y)]
}

func (b *Board) IsRevealed(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.revealed[b.index(x, y)]
}

// MineCount returns the number of mines around (x, y), [Mine] if the cell
// itself is mined and 0 outside the grid.
func (b *Board) MineCount(x, y int) int {
	if !b.InBounds(x, y) {
		return 0
	}
	return int(b.counts[b.index(x, y)])
}

func (b *Board) TotalFlags() int {
	return b.nflagged
}

func (b *Board) TotalMines() int {
	return b.Params.MineCount
}

func (b *Board) TotalRevealed() int {
	return b.nrevealed
}

func (b *Board) State() GameState {
	return b.state
}

// Exploded returns the mine that ended the game.
func (b *Board) Exploded() (Point, bool) {
	if b.exploded < 0 {
		return Point{}, false
	}
	return b.point(b.exploded), true
}

// Mines lists mine positions in row-major order.
func (b *Board) Mines() []Point {
	out := make([]Point, 0, b.Params.MineCount)
	for i, c := range b.counts {
		if c == Mine {
			out = append(out, b.point(i))
		}
	}
	return out
}

// Fingerprint identifies a mine layout: the XOR of the row-major indices of
// all mines, 0 for an empty board. Two boards with equal fingerprints are
// not necessarily equal.
func (b *Board) Fingerprint() int {
	var h int
	for i, c := range b.counts {
		if c == Mine {
			h ^= i
		}
	}
	return h
}

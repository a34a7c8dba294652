package board

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is open with that many mines around it.
	 *
	 * Values from 64 up only appear once the game is over: they
	 * tell apart flags that were right, flags that were wrong,
	 * mines the player never found and the one that went off.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "#"
	case s == Flagged || s == CorrectlyFlagged:
		return "F"
	case s == 0:
		return "."
	case 1 <= s && s <= 8:
		return strconv.Itoa(int(s))
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			b.WriteString(g[y*width+x].String())
			if x < width-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PlayerGrid is what the player is allowed to see. While playing only open
// cells and flags are shown; after a loss the mines and the wrong flags are
// uncovered as well, and after a win every mine shows as flagged.
func (b *Board) PlayerGrid() Grid {
	grid := make(Grid, len(b.counts))
	for i, c := range b.counts {
		switch {
		case b.revealed[i]:
			grid[i] = CellState(c)
		case b.state == Playing:
			if b.flagged[i] {
				grid[i] = Flagged
			} else {
				grid[i] = Unknown
			}
		case i == b.exploded:
			grid[i] = ExplodedMine
		case b.flagged[i] && c == Mine:
			grid[i] = CorrectlyFlagged
		case b.flagged[i]:
			grid[i] = FalselyFlagged
		case c == Mine && b.state == Win:
			grid[i] = CorrectlyFlagged
		case c == Mine:
			grid[i] = UnflaggedMine
		default:
			grid[i] = Unknown
		}
	}
	return grid
}

// Solution shows every cell uncovered, mines as [UnflaggedMine].
func (b *Board) Solution() Grid {
	grid := make(Grid, len(b.counts))
	for i, c := range b.counts {
		if c == Mine {
			grid[i] = UnflaggedMine
		} else {
			grid[i] = CellState(c)
		}
	}
	return grid
}

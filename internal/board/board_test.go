package board

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func bruteForceCount(b *Board, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && b.IsMine(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero width", Params{Width: 0, Height: 5, MineCount: 1}},
		{"negative height", Params{Width: 5, Height: -1, MineCount: 1}},
		{"negative mines", Params{Width: 5, Height: 5, MineCount: -1}},
		{"board full of mines", Params{Width: 3, Height: 3, MineCount: 9}},
		{"more mines than cells", Params{Width: 3, Height: 3, MineCount: 10}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(test.params, rand.New(rand.NewPCG(1, 2)))
			assert.Nil(t, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParams))

			var ipe *InvalidParamsError
			require.True(t, errors.As(err, &ipe))
			assert.Equal(t, test.params.MineCount, ipe.MineCount)
		})
	}
}

func TestNewPlacesDistinctMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{"1x1(0)", Params{Width: 1, Height: 1, MineCount: 0}},
		{"2x1(1)", Params{Width: 2, Height: 1, MineCount: 1}},
		{"9x9(10)", Params{Width: 9, Height: 9, MineCount: 10}},
		{"9x9(80)", Params{Width: 9, Height: 9, MineCount: 80}},
		{"16x16(40)", Params{Width: 16, Height: 16, MineCount: 40}},
		{"30x16(99)", Params{Width: 30, Height: 16, MineCount: 99}},
		{"24x20(99)", Params{Width: 24, Height: 20, MineCount: 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				b, err := New(test.params, r)
				require.NoError(t, err)

				mines := b.Mines()
				assert.Len(t, mines, test.params.MineCount)
				assert.Equal(t, test.params.MineCount, b.TotalMines())

				seen := make(map[Point]bool)
				for _, m := range mines {
					assert.True(t, b.InBounds(m.X, m.Y), "mine %v out of bounds", m)
					assert.False(t, seen[m], "mine %v placed twice", m)
					seen[m] = true
				}
			}
		})
	}
}

func TestNewIsUniform(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	left := 0
	const trials = 2000
	for range trials {
		b, err := New(Params{Width: 2, Height: 1, MineCount: 1}, r)
		require.NoError(t, err)
		if b.IsMine(0, 0) {
			left++
		}
	}
	assert.InDelta(t, trials/2, left, trials/10)
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	p := Params{Width: 16, Height: 16, MineCount: 40}
	a, err := New(p, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := New(p, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a.Mines(), b.Mines())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestMineCountsMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, p := range []Params{
		{Width: 9, Height: 9, MineCount: 10},
		{Width: 30, Height: 16, MineCount: 170},
		{Width: 1, Height: 12, MineCount: 5},
		{Width: 5, Height: 5, MineCount: 24},
	} {
		b, err := New(p, r)
		require.NoError(t, err)
		for y := range p.Height {
			for x := range p.Width {
				if b.IsMine(x, y) {
					assert.Equal(t, Mine, b.MineCount(x, y))
					continue
				}
				assert.Equal(t, bruteForceCount(b, x, y), b.MineCount(x, y),
					"count at %d:%d on %dx%d", x, y, p.Width, p.Height)
			}
		}
	}
}

func TestFromMines(t *testing.T) {
	b, err := FromMines(4, 3, []Point{{0, 0}, {3, 2}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, b.TotalMines())
	assert.Equal(t, []Point{{0, 0}, {3, 2}}, b.Mines())
	assert.Equal(t, 0^11, b.Fingerprint())

	_, err = FromMines(4, 3, []Point{{4, 0}})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = FromMines(1, 2, []Point{{0, 0}, {0, 1}})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestSingleCornerMine(t *testing.T) {
	b, err := FromMines(3, 3, []Point{{0, 0}})
	require.NoError(t, err)

	expected := [][]int{
		{Mine, 1, 0},
		{1, 1, 0},
		{0, 0, 0},
	}
	for y, row := range expected {
		for x, want := range row {
			assert.Equal(t, want, b.MineCount(x, y), "count at %d:%d", x, y)
			if want != Mine {
				assert.Equal(t, bruteForceCount(b, x, y), b.MineCount(x, y))
			}
		}
	}

	t.Run("numbered cell opens alone", func(t *testing.T) {
		b, _ := FromMines(3, 3, []Point{{0, 0}})
		b.Reveal(1, 1)
		assert.Equal(t, 1, b.TotalRevealed())
		assert.True(t, b.IsRevealed(1, 1))
		assert.Equal(t, Playing, b.State())
	})

	t.Run("empty corner opens every safe cell", func(t *testing.T) {
		b, _ := FromMines(3, 3, []Point{{0, 0}})
		b.Reveal(2, 2)
		assert.Equal(t, 8, b.TotalRevealed())
		assert.False(t, b.IsRevealed(0, 0))
		assert.Equal(t, Win, b.State())
	})

	t.Run("mine loses", func(t *testing.T) {
		b, _ := FromMines(3, 3, []Point{{0, 0}})
		b.Reveal(0, 0)
		assert.Equal(t, Lose, b.State())
		assert.Equal(t, 0, b.TotalRevealed())
		p, ok := b.Exploded()
		assert.True(t, ok)
		assert.Equal(t, Point{0, 0}, p)
	})
}

func TestEmptyBoardWinsInOneReveal(t *testing.T) {
	b, err := New(Params{Width: 5, Height: 5, MineCount: 0}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	b.Reveal(2, 3)
	assert.Equal(t, 25, b.TotalRevealed())
	assert.Equal(t, Win, b.State())
}

func TestOutOfBoundsIsHarmless(t *testing.T) {
	b, err := FromMines(3, 3, []Point{{0, 0}})
	require.NoError(t, err)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		assert.False(t, b.IsMine(p.X, p.Y))
		assert.False(t, b.IsFlagged(p.X, p.Y))
		assert.False(t, b.IsRevealed(p.X, p.Y))
		assert.Equal(t, 0, b.MineCount(p.X, p.Y))
		assert.Nil(t, b.Neighbors(p.X, p.Y))

		b.Reveal(p.X, p.Y)
		b.ToggleFlag(p.X, p.Y)
	}
	assert.Equal(t, 0, b.TotalRevealed())
	assert.Equal(t, 0, b.TotalFlags())
	assert.Equal(t, Playing, b.State())
}

func TestNeighbors(t *testing.T) {
	b, err := FromMines(3, 3, nil)
	require.NoError(t, err)
	assert.Len(t, b.Neighbors(0, 0), 3)
	assert.Len(t, b.Neighbors(1, 0), 5)
	assert.Len(t, b.Neighbors(1, 1), 8)
	assert.ElementsMatch(t,
		[]Point{{1, 0}, {0, 1}, {1, 1}},
		b.Neighbors(0, 0),
	)
}

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "lose", Lose.String())
	assert.False(t, Playing.Terminal())
	assert.True(t, Win.Terminal())
	assert.True(t, Lose.Terminal())
}

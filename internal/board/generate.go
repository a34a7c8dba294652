package board

import "math/rand/v2"

// placeMines picks p.MineCount distinct cell indices, each subset equally
// likely. Picks come off a shrinking candidate list, so any valid mine
// count terminates.
func (p Params) placeMines(r *rand.Rand) []int {
	width, height, mineCount := p.Unpack()

	candidates := make([]int, width*height)
	for i := range candidates {
		candidates[i] = i
	}

	mines := make([]int, 0, mineCount)
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		mines = append(mines, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return mines
}

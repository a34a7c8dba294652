package board

type Params struct {
	Width     int
	Height    int
	MineCount int
}

func (p Params) Unpack() (width, height, mineCount int) {
	return p.Width, p.Height, p.MineCount
}

func (p Params) CellCount() int {
	return p.Width * p.Height
}

// SafeCells is the number of reveals needed to win.
func (p Params) SafeCells() int {
	return p.CellCount() - p.MineCount
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.MineCount < 0 ||
		p.MineCount >= p.CellCount() {
		return &InvalidParamsError{p.Width, p.Height, p.MineCount}
	}
	return nil
}

func (p Params) ValidatePosition(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

package board

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid board parameters")

type InvalidParamsError struct {
	Width, Height, MineCount int
}

// [InvalidParamsError] implements [error]
func (e InvalidParamsError) Error() string {
	switch {
	case e.Width <= 0:
		return fmt.Sprintf("cannot create a board with width %d", e.Width)
	case e.Height <= 0:
		return fmt.Sprintf("cannot create a board with height %d", e.Height)
	case e.MineCount < 0:
		return fmt.Sprintf("cannot create a board with %d mines", e.MineCount)
	default:
		return fmt.Sprintf(
			"no room for %d mines on a %dx%d board (at least one cell must be safe)",
			e.MineCount, e.Width, e.Height,
		)
	}
}

func (e InvalidParamsError) Is(target error) bool {
	return target == ErrInvalidParams
}

// Package game wraps a [board.Board] with the policies a front end applies
// around it: dealing a new board when the opening move is a dud, and
// starting over once a game has ended.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

var Log = logrus.New()

// SpawnProtection rejects boards whose first reveal either hits a mine or
// opens fewer than MinOpening cells. At most MaxRerolls replacement boards
// are dealt per game; the last one is kept regardless.
type SpawnProtection struct {
	Enabled    bool
	MinOpening int
	MaxRerolls int
}

type Session struct {
	id     uuid.UUID
	params board.Params
	spawn  SpawnProtection
	rnd    *rand.Rand
	board  *board.Board
	log    *logrus.Entry

	games   int
	rerolls int
}

func NewSession(
	params board.Params, spawn SpawnProtection, rnd *rand.Rand,
) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	s := &Session{
		id:     id,
		params: params,
		spawn:  spawn,
		rnd:    rnd,
		log:    Log.WithField("session", id.String()),
		games:  1,
	}
	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) deal() error {
	b, err := board.New(s.params, s.rnd)
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}
	s.board = b
	return nil
}

// Restart throws the current board away and deals a new one with the same
// parameters.
func (s *Session) Restart() error {
	if err := s.deal(); err != nil {
		return err
	}
	s.games++
	s.log.WithFields(logrus.Fields{
		"games":       s.games,
		"fingerprint": s.board.Fingerprint(),
	}).Info("new game")
	return nil
}

func (s *Session) Reveal(x, y int) {
	first := s.board.TotalRevealed() == 0 && s.board.State() == board.Playing
	s.board.Reveal(x, y)
	if !first || !s.spawn.Enabled {
		return
	}
	for attempt := 0; s.badOpening() && attempt < s.spawn.MaxRerolls; attempt++ {
		s.log.WithFields(logrus.Fields{
			"x": x, "y": y,
			"state":    s.board.State(),
			"revealed": s.board.TotalRevealed(),
		}).Debug("opening rejected, dealing a new board")

		if err := s.deal(); err != nil {
			s.log.WithError(err).Error("reroll failed")
			return
		}
		s.rerolls++
		s.board.Reveal(x, y)
	}
}

// badOpening reports whether the first reveal should be retried. A board
// with fewer safe cells than MinOpening only needs to be cleared.
func (s *Session) badOpening() bool {
	revealed := s.board.TotalRevealed()
	if revealed == 0 {
		return s.board.State() == board.Lose
	}
	return revealed < min(s.spawn.MinOpening, s.params.SafeCells())
}

func (s *Session) ToggleFlag(x, y int) {
	s.board.ToggleFlag(x, y)
}

func (s *Session) Board() *board.Board {
	return s.board
}

func (s *Session) State() board.GameState {
	return s.board.State()
}

// FlagsRemaining is how many more flags the player may place before
// flagging more cells than there are mines. It never goes below zero.
func (s *Session) FlagsRemaining() int {
	return max(0, s.board.TotalMines()-s.board.TotalFlags())
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Params() board.Params {
	return s.params
}

// Games counts boards played in this session, the current one included.
// Boards replaced by spawn protection do not count.
func (s *Session) Games() int {
	return s.games
}

// Rerolls counts boards dealt by spawn protection over the whole session.
func (s *Session) Rerolls() int {
	return s.rerolls
}

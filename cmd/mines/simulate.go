package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/game"
	"github.com/vancomm/minesweeper-engine/internal/solver"
)

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "play many games with the solver and report how they went",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "games",
				Value: 1000,
				Usage: "number of games to play",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: runtime.NumCPU(),
				Usage: "games played at once",
			},
			&cli.BoolFlag{
				Name:    "spawn-protection",
				Usage:   "deal again when the first reveal is a mine or opens too little (default from SPAWN_PROTECTION)",
				Sources: cli.EnvVars("MINES_SPAWN_PROTECTION"),
			},
		},
		Action: simulate,
	}
}

type result struct {
	openedMine bool
	outcome    solver.Outcome
	rerolls    int
	moves      int
}

type tally struct {
	mu sync.Mutex

	played     int
	openedMine int
	outcomes   map[solver.Outcome]int
	rerolls    int
	moves      int
}

func (t *tally) add(r result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.played++
	t.rerolls += r.rerolls
	t.moves += r.moves
	if r.openedMine {
		t.openedMine++
		return
	}
	t.outcomes[r.outcome]++
}

func (t *tally) fields() logrus.Fields {
	t.mu.Lock()
	defer t.mu.Unlock()

	fields := logrus.Fields{
		"played":      t.played,
		"opened_mine": t.openedMine,
		"solved":      t.outcomes[solver.Solved],
		"stalled":     t.outcomes[solver.Stalled],
		"exploded":    t.outcomes[solver.Exploded],
		"rerolls":     t.rerolls,
		"moves":       t.moves,
	}
	if t.played > 0 {
		fields["win_rate"] = fmt.Sprintf("%.1f%%",
			100*float64(t.outcomes[solver.Solved])/float64(t.played))
	}
	return fields
}

// playGame opens the middle cell and lets the solver finish the game.
func playGame(p board.Params, spawn game.SpawnProtection, r *rand.Rand) (result, error) {
	sess, err := game.NewSession(p, spawn, r)
	if err != nil {
		return result{}, err
	}
	sess.Reveal(p.Width/2, p.Height/2)

	res := result{rerolls: sess.Rerolls()}
	if sess.State() == board.Lose {
		res.openedMine = true
		return res, nil
	}

	s := solver.New(sess.Board(), p)
	res.outcome = s.Solve()
	res.moves = s.Moves()
	return res, nil
}

func simulate(ctx context.Context, cmd *cli.Command) error {
	p, err := gameParams(cmd)
	if err != nil {
		return err
	}

	games, workers := cmd.Int("games"), cmd.Int("workers")
	if games <= 0 {
		return fmt.Errorf("--games must be positive, got %d", games)
	}
	if workers <= 0 {
		return fmt.Errorf("--workers must be positive, got %d", workers)
	}

	spawn, err := config.NewSpawnProtection()
	if err != nil {
		return fmt.Errorf("unable to read spawn protection config: %w", err)
	}
	if cmd.IsSet("spawn-protection") {
		spawn.Enabled = cmd.Bool("spawn-protection")
	}

	seed := cmd.Uint64("seed")

	log.WithFields(logrus.Fields{
		"width":            p.Width,
		"height":           p.Height,
		"mines":            p.MineCount,
		"games":            games,
		"workers":          workers,
		"spawn_protection": spawn.Enabled,
		"seed":             seed,
	}).Info("starting simulation")

	t := &tally{outcomes: make(map[solver.Outcome]int)}
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range games {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := createRand(0)
			if seed != 0 {
				r = rand.New(rand.NewPCG(seed, uint64(i)))
			}
			res, err := playGame(p, *spawn, r)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			t.add(res)
			return nil
		})
	}

	err = g.Wait()
	summary := log.WithFields(t.fields()).WithField("elapsed", time.Since(start).Round(time.Millisecond))
	switch {
	case errors.Is(err, context.Canceled), err == nil && ctx.Err() != nil:
		summary.Warn("simulation interrupted")
		return nil
	case err != nil:
		return err
	}
	summary.Info("simulation finished")

	if n := t.outcomes[solver.Exploded]; n > 0 {
		return fmt.Errorf("solver opened a mine in %d games", n)
	}
	return nil
}

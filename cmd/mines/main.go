package main

import (
	"context"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/game"
	"github.com/vancomm/minesweeper-engine/internal/solver"
)

var log = logrus.New()

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func setupLogging() error {
	cfg, err := config.NewLogging()
	if err != nil {
		return err
	}

	log.SetLevel(cfg.Level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.File != nil {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Level:      cfg.Level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file %s: %w", cfg.File.Path, err)
		}
		log.AddHook(hook)
	}

	board.Log = log
	game.Log = log
	solver.Log = log

	log.WithField("development", cfg.Development).Debug("logging configured")
	return nil
}

// gameParams reads the board size from the global flags.
func gameParams(cmd *cli.Command) (board.Params, error) {
	dto, err := config.ResolveGameParams(cmd.String("preset"), cmd.String("params"))
	if err != nil {
		return board.Params{}, err
	}
	p := board.Params(dto)
	if err := p.Validate(); err != nil {
		return board.Params{}, err
	}
	return p, nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "mines",
		Usage: "generate and play minesweeper boards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "preset",
				Value:   config.DefaultPreset,
				Usage:   fmt.Sprintf("board preset, one of %v", config.PresetNames()),
				Sources: cli.EnvVars("MINES_PRESET"),
			},
			&cli.StringFlag{
				Name:    "params",
				Usage:   "board size as a query string, e.g. width=9&height=9&mine_count=10 (overrides --preset)",
				Sources: cli.EnvVars("MINES_PARAMS"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "random seed, 0 picks one",
				Sources: cli.EnvVars("MINES_SEED"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogging()
		},
		Commands: []*cli.Command{
			generateCommand(),
			simulateCommand(),
		},
	}
}

func main() {
	if loaded, err := config.LoadDotEnv(); err != nil {
		log.Fatal("unable to load .env: ", err)
	} else if loaded {
		log.Debug(".env loaded")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

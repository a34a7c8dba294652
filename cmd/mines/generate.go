package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:   "generate",
		Usage:  "deal a board and print its solution",
		Action: generate,
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	p, err := gameParams(cmd)
	if err != nil {
		return err
	}

	b, err := board.New(p, createRand(cmd.Uint64("seed")))
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}

	log.WithFields(logrus.Fields{
		"width":       b.Width,
		"height":      b.Height,
		"mines":       b.TotalMines(),
		"fingerprint": b.Fingerprint(),
	}).Info("board generated")

	_, err = fmt.Fprint(cmd.Root().Writer, b.Solution().ToString(b.Width))
	return err
}

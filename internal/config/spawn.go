package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/minesweeper-engine/internal/game"
)

const (
	defaultMinOpening = 9
	defaultMaxRerolls = 100
)

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, nil
}

// NewSpawnProtection reads the first-reveal policy from the environment.
func NewSpawnProtection() (*game.SpawnProtection, error) {
	enabled := true
	if s, ok := os.LookupEnv("SPAWN_PROTECTION"); ok {
		enabled = s != "0"
	}

	minOpening, err := lookupInt("SPAWN_MIN_OPENING", defaultMinOpening)
	if err != nil {
		return nil, err
	}
	if minOpening < 0 {
		return nil, fmt.Errorf("SPAWN_MIN_OPENING must not be negative, got %d", minOpening)
	}

	maxRerolls, err := lookupInt("SPAWN_MAX_REROLLS", defaultMaxRerolls)
	if err != nil {
		return nil, err
	}
	if maxRerolls < 0 {
		return nil, fmt.Errorf("SPAWN_MAX_REROLLS must not be negative, got %d", maxRerolls)
	}

	sp := &game.SpawnProtection{
		Enabled:    enabled,
		MinOpening: minOpening,
		MaxRerolls: maxRerolls,
	}

	return sp, nil
}

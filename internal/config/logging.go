package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Logging struct {
	Development bool
	Level       logrus.Level
	File        *LogFile
}

// LogFile is a rotated copy of the log on disk.
type LogFile struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func NewLogging() (*Logging, error) {
	development := Development()

	level := logrus.InfoLevel
	if development {
		level = logrus.DebugLevel
	}
	if levelStr, ok := os.LookupEnv("LOG_LEVEL"); ok {
		var err error
		level, err = logrus.ParseLevel(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	cfg := &Logging{
		Development: development,
		Level:       level,
	}

	path, ok := os.LookupEnv("LOG_FILE")
	if !ok || path == "" {
		return cfg, nil
	}

	file := &LogFile{Path: path}
	var err error
	if file.MaxSizeMB, err = lookupInt("LOG_FILE_MAX_SIZE_MB", 50); err != nil {
		return nil, err
	}
	if file.MaxBackups, err = lookupInt("LOG_FILE_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}
	if file.MaxAgeDays, err = lookupInt("LOG_FILE_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}
	cfg.File = file

	return cfg, nil
}

// LoadDotEnv reads .env files into the environment. Missing files are not
// an error; variables already set win.
func LoadDotEnv(filenames ...string) (loaded bool, err error) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	present := make([]string, 0, len(filenames))
	for _, f := range filenames {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return false, nil
	}
	if err := godotenv.Load(present...); err != nil {
		return false, fmt.Errorf("unable to load %v: %w", present, err)
	}
	return true, nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"
)

var ErrUnknownPreset = errors.New("unknown preset")

type GameParamsDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

// ParseGameParams decodes board dimensions from query-style values, e.g.
// width=30&height=16&mine_count=99.
func ParseGameParams(src map[string][]string) (GameParamsDTO, error) {
	var dto GameParamsDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func ParseGameParamsQuery(query string) (GameParamsDTO, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return GameParamsDTO{}, fmt.Errorf("unable to parse game params %q: %w", query, err)
	}
	return ParseGameParams(values)
}

var presets = map[string]GameParamsDTO{
	"beginner":     {Width: 9, Height: 9, MineCount: 10},
	"intermediate": {Width: 16, Height: 16, MineCount: 40},
	"expert":       {Width: 30, Height: 16, MineCount: 99},
	"classic":      {Width: 24, Height: 20, MineCount: 99},
}

const DefaultPreset = "classic"

func Preset(name string) (GameParamsDTO, error) {
	dto, ok := presets[strings.ToLower(name)]
	if !ok {
		return GameParamsDTO{}, fmt.Errorf(
			"%w %q (want one of %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "),
		)
	}
	return dto, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveGameParams prefers an explicit query over a named preset.
func ResolveGameParams(preset, query string) (GameParamsDTO, error) {
	if query != "" {
		return ParseGameParamsQuery(query)
	}
	if preset == "" {
		preset = DefaultPreset
	}
	return Preset(preset)
}

package config

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// ErrNoDefault is returned when a game has no embedded default config.
var ErrNoDefault = errors.New("config: no embedded default")

// Default returns the embedded default configuration of a game.
func Default(gameID string) (GameConfig, error) {
	var cfg GameConfig
	data, err := defaultFS.ReadFile(path.Join("defaults", gameID+".yaml"))
	if err != nil {
		return cfg, fmt.Errorf("%w for %q", ErrNoDefault, gameID)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse default %s: %w", gameID, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: default %s: %w", gameID, err)
	}
	return cfg, nil
}

// DefaultIDs lists the games that ship an embedded default, sorted.
func DefaultIDs() []string {
	entries, err := defaultFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

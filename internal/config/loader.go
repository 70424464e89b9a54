package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a game.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
//
// Files found along the search path are overlaid on the embedded default,
// so a user file only needs the keys it changes.
func Load(gameID, customPath string) (GameConfig, error) {
	cfg, err := Default(gameID)
	if err != nil {
		return GameConfig{}, err
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	filename := gameID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if overlay, ok := tryOverlay(cfg, userCfgPath); ok {
			return overlay, nil
		}
	}

	// Try local configs directory
	if overlay, ok := tryOverlay(cfg, filepath.Join("configs", filename)); ok {
		return overlay, nil
	}

	return cfg, nil
}

// tryOverlay decodes path on top of base. Unreadable, malformed or invalid
// files are skipped so the search continues.
func tryOverlay(base GameConfig, path string) (GameConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base.clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// clone copies the maps so overlays never mutate the cached default.
func (c GameConfig) clone() GameConfig {
	out := c
	out.Kinds = make(map[string]KindConfig, len(c.Kinds))
	for k, v := range c.Kinds {
		out.Kinds[k] = v
	}
	out.Keys = make(map[string][]string, len(c.Keys))
	for k, v := range c.Keys {
		out.Keys[k] = append([]string(nil), v...)
	}
	out.Surface.Bounds = make(map[string]string, len(c.Surface.Bounds))
	for k, v := range c.Surface.Bounds {
		out.Surface.Bounds[k] = v
	}
	out.Surface.Fixtures = append([]FixtureConfig(nil), c.Surface.Fixtures...)
	out.Wave.Mix = append([]MixEntry(nil), c.Wave.Mix...)
	out.Wave.Grid.RowKinds = append([]string(nil), c.Wave.Grid.RowKinds...)
	return out
}

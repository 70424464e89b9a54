package engine

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// LoadDescriptor resolves the config for a game through the usual search
// path, applies the difficulty preset and builds its descriptor.
func LoadDescriptor(id, title string, opts registry.Options) (*Descriptor, error) {
	cfg, err := config.Load(id, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("engine: load %s config: %w", id, err)
	}
	if opts.Preset != "" {
		preset := config.ParsePreset(opts.Preset)
		if preset == "" {
			return nil, fmt.Errorf("engine: unknown difficulty preset %q", opts.Preset)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return FromConfig(id, title, cfg)
}

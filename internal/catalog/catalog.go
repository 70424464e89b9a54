// Package catalog is the read-only table of externally hosted games the
// portal links to. Entries are keyed by URL slug.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

//go:embed embeds.yaml
var embedsYAML []byte

// ErrNotFound is returned by Lookup for an unknown slug.
var ErrNotFound = errors.New("catalog: game not found")

// Entry is one externally hosted game.
type Entry struct {
	Slug        string
	Title       string
	URL         string
	Color       core.Color
	Description string
}

type entryDoc struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

var (
	loadOnce sync.Once
	entries  map[string]Entry
	loadErr  error
)

// Parse decodes a catalog document. Every entry needs a title and an
// absolute http(s) URL.
func Parse(data []byte) (map[string]Entry, error) {
	var doc struct {
		Embeds map[string]entryDoc `yaml:"embeds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	out := make(map[string]Entry, len(doc.Embeds))
	for slug, d := range doc.Embeds {
		if d.Title == "" {
			return nil, fmt.Errorf("catalog: %s: missing title", slug)
		}
		u, err := url.Parse(d.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("catalog: %s: bad url %q", slug, d.URL)
		}
		out[slug] = Entry{
			Slug:        slug,
			Title:       d.Title,
			URL:         d.URL,
			Color:       core.ParseColor(d.Color),
			Description: d.Description,
		}
	}
	return out, nil
}

func load() (map[string]Entry, error) {
	loadOnce.Do(func() {
		entries, loadErr = Parse(embedsYAML)
	})
	return entries, loadErr
}

// Lookup returns the entry for a slug. Slugs are matched case-insensitively.
func Lookup(slug string) (Entry, error) {
	all, err := load()
	if err != nil {
		return Entry{}, err
	}
	e, ok := all[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return e, nil
}

// List returns every entry sorted by slug.
func List() ([]Entry, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// Package source loads timeline items from item files and calendars.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hy4ri/timeline-tui/internal/config"
	appLog "github.com/hy4ri/timeline-tui/internal/log"
	"github.com/hy4ri/timeline-tui/internal/timeline"
)

// Kind identifies the format of a source file.
type Kind string

const (
	KindYAML Kind = "yaml"
	KindICS  Kind = "ics"
)

// ErrUnknownKind is returned for files whose format cannot be determined.
var ErrUnknownKind = errors.New("unknown source kind")

// Options controls how sources are read.
type Options struct {
	// Today anchors the recurrence horizon of calendar sources.
	Today time.Time
	// HorizonDays bounds recurrence expansion in both directions from Today.
	HorizonDays int
}

// KindOf returns the kind set explicitly, or infers it from the file extension.
func KindOf(path, explicit string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "yaml", "yml":
		return KindYAML, nil
	case "ics", "ical":
		return KindICS, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, explicit)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".ics":
		return KindICS, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, path)
}

// Load reads the raw items of a single source.
func Load(path, kind string, opts Options) ([]timeline.RawItem, error) {
	k, err := KindOf(path, kind)
	if err != nil {
		return nil, err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindICS:
		return LoadICS(expanded, opts)
	default:
		return LoadYAML(expanded)
	}
}

// Result is the outcome of loading every configured source.
type Result struct {
	Items    []timeline.Item
	Rejected []*timeline.ItemError
}

// LoadAll reads every source and parses its items. A source that cannot be
// read fails the whole load; individual malformed items are only reported.
// Ids are made unique across sources.
func LoadAll(sources []config.SourceConfig, opts Options) (Result, error) {
	var res Result
	seen := make(map[int]bool)
	nextID := 1

	for _, src := range sources {
		raws, err := Load(src.Path, src.Kind, opts)
		if err != nil {
			appLog.Error("source load failed", err, "path", src.Path)
			return Result{}, fmt.Errorf("failed to load %s: %w", src.Path, err)
		}

		items, rejected := timeline.ParseItems(raws)
		for _, rej := range rejected {
			appLog.Info("item rejected", "path", src.Path, "id", rej.ID, "reason", rej.Err)
		}
		res.Rejected = append(res.Rejected, rejected...)

		for _, it := range items {
			if seen[it.ID] {
				for seen[nextID] {
					nextID++
				}
				appLog.Debug("item id reassigned", "path", src.Path, "from", it.ID, "to", nextID)
				it.ID = nextID
			}
			seen[it.ID] = true
			res.Items = append(res.Items, it)
		}
		appLog.Info("source loaded", "path", src.Path, "items", len(items), "rejected", len(rejected))
	}

	if res.Items == nil {
		res.Items = []timeline.Item{}
	}
	return res, nil
}

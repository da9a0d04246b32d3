package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hy4ri/timeline-tui/internal/timeline"
	"gopkg.in/yaml.v3"
)

// itemFile is the on-disk shape of a YAML item file:
//
//	items:
//	  - id: 1
//	    name: Design
//	    start: 2021-01-01
//	    end: 2021-01-05
type itemFile struct {
	Items []timeline.RawItem `yaml:"items"`
}

// LoadYAML reads raw items from a YAML item file.
func LoadYAML(path string) ([]timeline.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item file: %w", err)
	}

	var f itemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse item file: %w", err)
	}
	return f.Items, nil
}

// SaveYAML writes items back to a YAML item file, keeping edits made in the UI.
func SaveYAML(path string, items []timeline.Item) error {
	if path == "" {
		return errors.New("no item file path")
	}
	f := itemFile{Items: make([]timeline.RawItem, 0, len(items))}
	for _, it := range items {
		f.Items = append(f.Items, it.Raw())
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to serialize items: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create item directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write item file: %w", err)
	}
	return nil
}

package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// scenarioFile is the on-disk shape of one catalog file: either a single
// scenario document or a list under "scenarios".
type scenarioFile struct {
	Scenarios []*ScenarioDefinition `yaml:"scenarios"`
}

// Load reads every *.yaml file under dir and builds a catalog from them.
// A missing or empty directory falls back to the built-in default catalog.
func Load(dir string) (*Catalog, error) {
	defs, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return New(BuildDefault())
	}
	return New(defs)
}

// readDir collects scenario definitions from dir. Missing dir returns nil
// definitions, no error.
func readDir(dir string) ([]*ScenarioDefinition, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	// Stable catalog order regardless of readdir order.
	sort.Strings(paths)

	var defs []*ScenarioDefinition
	for _, p := range paths {
		fileDefs, err := readYAML(p)
		if err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", filepath.Base(p), err)
		}
		defs = append(defs, fileDefs...)
	}
	return defs, nil
}

// readYAML loads one catalog file. The file may hold a single scenario
// document or a "scenarios:" list.
func readYAML(path string) ([]*ScenarioDefinition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var multi scenarioFile
	if err := yaml.Unmarshal(b, &multi); err == nil && len(multi.Scenarios) > 0 {
		return multi.Scenarios, nil
	}

	var single ScenarioDefinition
	if err := yaml.Unmarshal(b, &single); err != nil {
		return nil, err
	}
	if single.ID == "" && single.Name == "" {
		return nil, nil
	}
	return []*ScenarioDefinition{&single}, nil
}

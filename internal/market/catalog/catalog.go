// Package catalog loads the product definitions the market is built from.
// The catalog is read once at startup; any malformed entry is a fatal
// configuration error, the game must not start on a partial catalog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid product catalog")

// Entry is one product definition as written in the catalog file.
type Entry struct {
	Name              string `yaml:"name"`
	Durability        int    `yaml:"durability"`
	BasePrice         int64  `yaml:"baseprice"`
	MinProductionRate int    `yaml:"minProductionRate"`
	MaxProductionRate int    `yaml:"maxProductionRate"`
}

//go:embed products.yaml
var defaultCatalog []byte

// Load reads and validates a catalog file.
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Default returns the catalog embedded in the binary.
func Default() []Entry {
	entries, err := Parse(defaultCatalog)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is a bug.
		panic(err)
	}
	return entries
}

// Parse unmarshals and validates catalog YAML.
func Parse(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no products defined", ErrInvalidCatalog)
	}
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %v", ErrInvalidCatalog, i+1, e.Name, err)
		}
	}
	return entries, nil
}

func (e Entry) validate() error {
	if e.Name == "" {
		return errors.New("missing name")
	}
	if e.Durability < 1 {
		return fmt.Errorf("durability %d, want >= 1", e.Durability)
	}
	if e.BasePrice < 1 {
		return fmt.Errorf("baseprice %d, want >= 1", e.BasePrice)
	}
	if e.MaxProductionRate < 1 {
		return fmt.Errorf("maxProductionRate %d, want >= 1", e.MaxProductionRate)
	}
	if e.MinProductionRate > e.MaxProductionRate {
		return fmt.Errorf("minProductionRate %d exceeds maxProductionRate %d",
			e.MinProductionRate, e.MaxProductionRate)
	}
	return nil
}

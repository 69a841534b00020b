package trophy

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BoatNotFound is returned by Resolve when no fragment matches
const BoatNotFound = "Boat Not Found"

// ErrConfigLoad is returned when the trophy table resource is missing or corrupt
var ErrConfigLoad = errors.New("loading trophy table")

//go:embed trophy_boat_pair.yaml
var defaultTable []byte

// Entry pairs a trophy name fragment with a boat class code
type Entry struct {
	Fragment string
	Boat     string
}

// Table is an ordered trophy fragment lookup. Earlier entries take priority.
type Table []Entry

// Resolve returns the boat class of the first entry whose fragment is contained
// in name (case-sensitive), or BoatNotFound.
func (t Table) Resolve(name string) string {
	for _, e := range t {
		if strings.Contains(name, e.Fragment) {
			return e.Boat
		}
	}
	return BoatNotFound
}

// Boats returns the distinct boat classes in table order
func (t Table) Boats() []string {
	seen := make(map[string]bool)
	boats := make([]string, 0, len(t))
	for _, e := range t {
		if !seen[e.Boat] {
			seen[e.Boat] = true
			boats = append(boats, e.Boat)
		}
	}
	return boats
}

// Default returns the table bundled with the binary
func Default() (Table, error) {
	return Load(bytes.NewReader(defaultTable))
}

// LoadFile reads a table from a YAML file
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a flat YAML mapping of trophy fragment to boat class. The document is
// decoded as a node tree so that mapping order and repeated keys are kept.
func Load(r io.Reader) (Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrConfigLoad)
		}
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrConfigLoad, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrConfigLoad, root.Line)
	}

	table := make(Table, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return nil, fmt.Errorf("%w: line %d: entries must be string pairs", ErrConfigLoad, key.Line)
		}
		if key.Value == "" {
			return nil, fmt.Errorf("%w: line %d: empty trophy fragment", ErrConfigLoad, key.Line)
		}
		table = append(table, Entry{Fragment: key.Value, Boat: value.Value})
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrConfigLoad)
	}

	return table, nil
}

package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"gopkg.in/yaml.v3"
)

const fileName = "defaults.yaml"

// Defaults holds the saved option values. Nil or empty fields are unset.
type Defaults struct {
	Crew   []string `yaml:"crew,omitempty"`
	GMT    *int     `yaml:"gmt,omitempty"`
	Boat   string   `yaml:"boat,omitempty"`
	Trophy string   `yaml:"trophy,omitempty"`
}

// Storage defines the interface for defaults storage
type Storage interface {
	Load() (Defaults, error)
	Save(d Defaults) error
	Clear() error
}

// IsEmpty reports whether no default is set
func (d Defaults) IsEmpty() bool {
	return len(d.Crew) == 0 && d.GMT == nil && d.Boat == "" && d.Trophy == ""
}

// Criteria returns the saved filter values
func (d Defaults) Criteria() filter.Criteria {
	return filter.Criteria{Crew: d.Crew, Boat: d.Boat, Trophy: d.Trophy}
}

// Merge overlays the set fields of other onto d
func (d Defaults) Merge(other Defaults) Defaults {
	if len(other.Crew) > 0 {
		d.Crew = other.Crew
	}
	if other.GMT != nil {
		gmt := *other.GMT
		d.GMT = &gmt
	}
	if other.Boat != "" {
		d.Boat = other.Boat
	}
	if other.Trophy != "" {
		d.Trophy = other.Trophy
	}
	return d
}

// ToYAML marshals defaults to YAML
func (d Defaults) ToYAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// FromYAML unmarshals defaults from YAML
func FromYAML(data []byte) (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("unmarshaling defaults: %w", err)
	}
	return d, nil
}

var _ Storage = (*FileStorage)(nil)

// FileStorage keeps defaults in a YAML file
type FileStorage struct {
	path string
}

// NewFileStorage creates storage for defaults.yaml inside dir
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, fileName)}
}

// Path returns the defaults file location
func (s *FileStorage) Path() string {
	return s.path
}

// Load reads the saved defaults. A missing file yields empty defaults.
func (s *FileStorage) Load() (Defaults, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("reading defaults: %w", err)
	}
	return FromYAML(data)
}

// Save writes the defaults, creating the directory if needed
func (s *FileStorage) Save(d Defaults) error {
	data, err := d.ToYAML()
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing defaults: %w", err)
	}
	return nil
}

// Clear removes the saved defaults
func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing defaults: %w", err)
	}
	return nil
}

package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/festivalmap/festivals/internal/festival"
)

const (
	// ModuleFile is the generated JS data module.
	ModuleFile = "festivals.js"
	// JSONFile is the JSON snapshot of the same records.
	JSONFile = "festivals.json"
	// DefaultDir is where datasets are written unless configured otherwise.
	DefaultDir = "data"
)

// Store reads and writes the dataset files in one directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
// A leading "~/" is expanded to the user's home directory.
func New(dir string) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// ModulePath returns the path of the JS data module.
func (s *Store) ModulePath() string {
	return filepath.Join(s.dir, ModuleFile)
}

// JSONPath returns the path of the JSON snapshot.
func (s *Store) JSONPath() string {
	return filepath.Join(s.dir, JSONFile)
}

// Save replaces both dataset files with records.
// The JSON snapshot is written first; if it cannot be written the module is left untouched.
func (s *Store) Save(records []*festival.Record) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", JSONFile, err)
	}
	module := EncodeModule(records)

	if err := writeFileAtomic(s.dir, JSONFile, data); err != nil {
		return fmt.Errorf("writing %s: %w", JSONFile, err)
	}
	if err := writeFileAtomic(s.dir, ModuleFile, module); err != nil {
		return fmt.Errorf("writing %s: %w", ModuleFile, err)
	}

	return nil
}

// LoadJSON reads the JSON snapshot. A missing file yields an empty collection.
func (s *Store) LoadJSON() ([]*festival.Record, error) {
	data, err := os.ReadFile(s.JSONPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*festival.Record{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var records []*festival.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if records == nil {
		records = []*festival.Record{}
	}
	return records, nil
}

// LoadModule reads the records back from the JS data module.
// A missing file yields an empty collection.
func (s *Store) LoadModule() ([]*festival.Record, error) {
	data, err := os.ReadFile(s.ModulePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*festival.Record{}, nil
		}
		return nil, fmt.Errorf("reading data module: %w", err)
	}

	records, err := DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("parsing data module: %w", err)
	}
	return records, nil
}

// Load returns the current dataset, preferring the JSON snapshot and falling back
// to the data module when no snapshot has been written.
func (s *Store) Load() ([]*festival.Record, error) {
	if _, err := os.Stat(s.JSONPath()); err == nil {
		return s.LoadJSON()
	}
	return s.LoadModule()
}

// EncodeJSON renders records as an indented JSON array with a trailing newline.
func EncodeJSON(records []*festival.Record) ([]byte, error) {
	if records == nil {
		records = []*festival.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Package levels loads board files from disk.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/levels/formats"
)

// Level is a board file as found on disk.
type Level struct {
	ID       string
	Name     string
	FilePath string
	Spec     core.BoardSpec
	Metadata map[string]string
}

// Board validates the level and builds its board template.
func (l *Level) Board() (*core.Board, error) {
	b, err := core.Load(l.Spec)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return b, nil
}

// FileError records a board file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Scan recursively loads every supported file under Root.
// Files that fail to parse or validate are returned in bad rather than
// aborting the scan. Levels are sorted by ID.
func (l *Loader) Scan() (levels []Level, bad []FileError, err error) {
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err == nil {
			_, err = level.Board()
		}
		if err != nil {
			bad = append(bad, FileError{Path: path, Err: err})
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, bad, nil
}

// LoadAll loads all valid levels under Root, sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.Scan()
	return levels, err
}

// LoadFile loads a single level file. Files without an id take their
// name from the file name.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := formats.Parse(data, ext, filepath.Base(path))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if parsed.ID == "" {
		parsed.ID = stem
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		FilePath: path,
		Spec:     parsed.Spec,
		Metadata: parsed.Metadata,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Resolve loads arg as a file path if it names an existing file,
// otherwise as a level ID under Root.
func (l *Loader) Resolve(arg string) (Level, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return l.LoadFile(arg)
	}
	return l.LoadByID(arg)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

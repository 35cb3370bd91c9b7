// Package levels loads Dynamite Valley levels from a directory or from the
// built-in campaign and follows the campaign chain.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels/formats"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

//go:embed campaign/*.lvl
var campaign embed.FS

// ErrNotFound is returned when no level file has the requested name.
var ErrNotFound = errors.New("level not found")

// Entry is the result of loading one file during a scan.
type Entry struct {
	Name  string
	Path  string
	Level formats.Level // valid when Err is nil
	Err   error
}

// Loader reads levels from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over fsys. Level files may sit in subdirectories.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// DirLoader creates a loader for a directory on disk.
func DirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// Builtin returns a loader for the campaign shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(campaign, "campaign")
	if err != nil {
		panic(err)
	}
	return NewLoader(sub)
}

// Scan loads every supported file and reports per-file errors instead of
// stopping at the first one. Entries are sorted by name.
func (l *Loader) Scan() ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := formats.Lookup(path.Ext(p)); !ok {
			return nil
		}

		lvl, err := l.LoadFile(p)
		entries = append(entries, Entry{Name: levelName(p), Path: p, Level: lvl, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// LoadAll returns every level that loads cleanly, sorted by name.
// Broken files are skipped; use Scan to see why.
func (l *Loader) LoadAll() ([]formats.Level, error) {
	entries, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var levels []formats.Level
	for _, e := range entries {
		if e.Err == nil {
			levels = append(levels, e.Level)
		}
	}
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (formats.Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return formats.Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	lvl, err := formats.Parse(levelName(p), path.Ext(p), data)
	if err != nil {
		return formats.Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return lvl, nil
}

// LoadByName loads the level whose file name, without extension, is name.
func (l *Loader) LoadByName(name string) (formats.Level, error) {
	entries, err := l.Scan()
	if err != nil {
		return formats.Level{}, err
	}

	for _, e := range entries {
		if e.Name == name {
			return e.Level, e.Err
		}
	}
	return formats.Level{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the names of every level file, loadable or not.
func (l *Loader) Names() ([]string, error) {
	entries, err := l.Scan()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// Chain follows :next: links from start until the end of the campaign.
// A link to a missing level or back into the chain is an error.
func (l *Loader) Chain(start string) ([]string, error) {
	seen := make(map[string]bool)
	var chain []string

	for name := start; name != formats.EndOfCampaign; {
		if seen[name] {
			return chain, fmt.Errorf("campaign loops back to %s", name)
		}
		seen[name] = true

		lvl, err := l.LoadByName(name)
		if err != nil {
			return chain, err
		}
		chain = append(chain, name)
		name = lvl.Next
	}
	return chain, nil
}

// NewState builds the initial simulation state for a level.
func NewState(lvl formats.Level, rules sim.Rules) (*sim.State, error) {
	st, err := sim.NewState(lvl.Layout, rules)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	return st, nil
}

func levelName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

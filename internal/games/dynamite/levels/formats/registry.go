package formats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Parser turns the bytes of a level file into a Level.
// name is the file name without its extension.
type Parser func(name string, data []byte) (Level, error)

var (
	parsers = make(map[string]Parser)
	mu      sync.RWMutex
)

func init() {
	Register(".lvl", ParseText)
	Register(".txt", ParseText)
	Register(".yaml", ParseYAML)
	Register(".yml", ParseYAML)
}

// Register adds a parser for a file extension such as ".lvl".
// Panics if the extension already has a parser.
func Register(ext string, p Parser) {
	mu.Lock()
	defer mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := parsers[ext]; exists {
		panic(fmt.Sprintf("formats: extension %q already registered", ext))
	}
	parsers[ext] = p
}

// Lookup returns the parser for ext, if any.
func Lookup(ext string) (Parser, bool) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := parsers[strings.ToLower(ext)]
	return p, ok
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]string, 0, len(parsers))
	for ext := range parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Parse routes data to the parser registered for ext.
func Parse(name, ext string, data []byte) (Level, error) {
	p, ok := Lookup(ext)
	if !ok {
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	return p(name, data)
}

// Package loader resolves INSERT-FILE directives into a single merged AST,
// following the same recursive-include-with-cycle-detection shape as a
// manifest loader, but over source files and reader.Read instead of TOML
// resource bundles.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dekarrin/zil/internal/reader"
	"github.com/dekarrin/zil/internal/zerrors"
	"github.com/dekarrin/zil/internal/zilast"
)

// MaxIncludeDepth bounds the include stack to catch runaway recursion that
// isn't a simple cycle (e.g. ever-growing chains of distinct generated
// names).
const MaxIncludeDepth = 64

// FS abstracts file access so tests can load from an in-memory fixture
// instead of the real filesystem.
type FS interface {
	ReadFile(name string) ([]byte, error)
	// ReadDir lists entries in a directory for the case-insensitive scan
	// fallback. Implementations may return an error if dir doesn't exist.
	ReadDir(dir string) ([]string, error)
}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Load resolves entryPath and every file it transitively includes via
// INSERT-FILE, returning one merged top-level AST in source order.
func Load(entryPath string) ([]zilast.Node, error) {
	return LoadFS(osFS{}, entryPath)
}

// LoadFS is Load parameterized over an FS, for testing against fixtures that
// don't touch disk.
func LoadFS(fsys FS, entryPath string) ([]zilast.Node, error) {
	l := &loader{fs: fsys, loaded: make(map[string]bool)}
	return l.load(entryPath, nil)
}

type loader struct {
	fs     FS
	loaded map[string]bool // canonical path -> already merged
}

func (l *loader) load(name string, stack []string) ([]zilast.Node, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	for _, p := range stack {
		if p == path {
			cycle := append(append([]string{}, stack...), path)
			return nil, zerrors.CircularDependency(cycle)
		}
	}
	if len(stack) >= MaxIncludeDepth {
		return nil, zerrors.CircularDependency(append(append([]string{}, stack...), path))
	}

	if l.loaded[path] {
		return nil, nil
	}
	l.loaded[path] = true

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerrors.ReadError(path, err)
	}

	nodes, err := reader.Read(string(data))
	if err != nil {
		return nil, zerrors.ParseError(path, err)
	}

	substack := append(append([]string{}, stack...), path)

	var merged []zilast.Node
	for _, n := range nodes {
		inc, ok := n.(*zilast.IncludeRef)
		if !ok {
			merged = append(merged, n)
			continue
		}
		included, err := l.load(inc.FileName, substack)
		if err != nil {
			return nil, err
		}
		merged = append(merged, included...)
	}

	return merged, nil
}

// resolve implements the bare-name resolution order: N, N.zil, the same two
// with the extension case-folded, then a case-insensitive directory scan.
func (l *loader) resolve(name string) (string, error) {
	candidates := []string{name, name + ".zil", name + ".ZIL"}
	for _, c := range candidates {
		if l.exists(c) {
			return filepath.Clean(c), nil
		}
	}

	dir := filepath.Dir(name)
	base := filepath.Base(name)
	entries, err := l.fs.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if strings.EqualFold(e, base) || strings.EqualFold(e, base+".zil") {
				return filepath.Clean(filepath.Join(dir, e)), nil
			}
		}
	}

	return "", zerrors.FileNotFound(name)
}

func (l *loader) exists(path string) bool {
	_, err := l.fs.ReadFile(path)
	return err == nil
}

package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// FSSource loads YAML tree documents from a filesystem.
// Files are read in lexical order, which also defines the category display order.
type FSSource struct {
	FS       fs.FS
	Patterns []string
}

// Builtin returns the source of the trees shipped with the binary.
func Builtin() *FSSource {
	sub, err := fs.Sub(builtinFS, "data")
	if err != nil {
		// The embedded directory is fixed at compile time.
		panic(fmt.Sprintf("catalog: embedded data missing: %v", err))
	}
	return &FSSource{FS: sub, Patterns: []string{"*.yaml"}}
}

// DirSource returns a source reading *.yaml and *.yml documents from dir.
func DirSource(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir), Patterns: []string{"*.yaml", "*.yml"}}
}

// LoadTrees implements ports.TreeSource.
func (s *FSSource) LoadTrees(ctx context.Context) ([]*domain.Tree, error) {
	var files []string
	for _, pattern := range s.Patterns {
		matches, err := fs.Glob(s.FS, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Slice(files, func(i, j int) bool { return path.Base(files[i]) < path.Base(files[j]) })

	trees := make([]*domain.Tree, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(s.FS, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		tree, err := DecodeYAML(name, data)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

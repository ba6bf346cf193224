package builder

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.DependencyResolver = NoDependencies{}
	_ ports.DependencyResolver = (*IncludeResolver)(nil)
)

// NoDependencies is the default resolver: every file can be processed at any time.
type NoDependencies struct{}

// Resolve returns a graph of files without edges.
func (NoDependencies) Resolve(_ context.Context, _ string, files []string) (*domain.DependencyGraph, error) {
	return newGraph(files)
}

func newGraph(files []string) (*domain.DependencyGraph, error) {
	g := domain.NewDependencyGraph()
	for _, file := range files {
		if err := g.AddDocument(file); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// includeDirectives are the directives pulling another file into a document.
var includeDirectives = map[string]bool{"include": true, "literalinclude": true}

// IncludeResolver orders a document after the source files it includes.
type IncludeResolver struct {
	parser ports.Parser
}

// NewIncludeResolver creates an IncludeResolver reading directives with parser.
func NewIncludeResolver(parser ports.Parser) *IncludeResolver {
	return &IncludeResolver{parser: parser}
}

// Resolve parses every file and adds an edge for each include directive whose
// target is itself a discovered file. Includes of other files are ignored.
func (r *IncludeResolver) Resolve(ctx context.Context, sourceDir string, files []string) (*domain.DependencyGraph, error) {
	g, err := newGraph(files)
	if err != nil {
		return nil, err
	}

	known := make(map[string]string, len(files))
	for _, file := range files {
		known[filepath.ToSlash(file)] = file
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full := filepath.Join(sourceDir, file)
		content, err := os.ReadFile(full) //nolint:gosec // file was discovered below the source directory
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrReadSourceFailed, err.Error()), "path", full)
		}
		doc, err := r.parser.Parse(file, content)
		if err != nil {
			return nil, err
		}

		from := filepath.ToSlash(file)
		for _, dir := range doc.Directives {
			if !includeDirectives[dir.Name] || len(dir.Args) == 0 {
				continue
			}
			target := domain.ResolveDocRef(from, dir.Args[0])
			dep, ok := known[path.Clean(target)]
			if !ok || dep == file {
				continue
			}
			if err := g.AddDependency(file, dep); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

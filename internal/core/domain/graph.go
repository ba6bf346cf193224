// Package domain contains the core domain models of the documentation build.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// DependencyGraph maps every discovered source file to the files it depends on.
type DependencyGraph struct {
	deps           map[InternedString][]InternedString
	dependents     map[InternedString][]InternedString
	insertion      []InternedString
	executionOrder []InternedString
}

// NewDependencyGraph creates a new empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps:       make(map[InternedString][]InternedString),
		dependents: make(map[InternedString][]InternedString),
	}
}

// AddDocument adds a file with no dependencies.
func (g *DependencyGraph) AddDocument(path string) error {
	name := NewInternedString(path)
	if _, exists := g.deps[name]; exists {
		return zerr.With(zerr.Wrap(ErrDocumentAlreadyExists, "graph"), "path", path)
	}
	g.deps[name] = nil
	g.insertion = append(g.insertion, name)
	return nil
}

// AddDependency records that path must be processed after dep.
// Both files must already be part of the graph.
func (g *DependencyGraph) AddDependency(path, dep string) error {
	from := NewInternedString(path)
	to := NewInternedString(dep)
	if _, ok := g.deps[from]; !ok {
		return zerr.With(zerr.Wrap(ErrMissingDependency, "graph"), "path", path)
	}
	if _, ok := g.deps[to]; !ok {
		return zerr.With(zerr.Wrap(ErrMissingDependency, "graph"), "dependency", dep)
	}
	for _, existing := range g.deps[from] {
		if existing == to {
			return nil
		}
	}
	g.deps[from] = append(g.deps[from], to)
	g.dependents[to] = append(g.dependents[to], from)
	return nil
}

// Validate checks for cycles using a depth first topological sort and
// populates the execution order used by Walk.
func (g *DependencyGraph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.deps))
	visited := make(map[InternedString]int, len(g.deps)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.deps[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.insertion {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *DependencyGraph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "graph"), "cycle", strings.Join(parts, " -> "))
}

// Walk yields files in dependency order. Validate must have returned nil.
func (g *DependencyGraph) Walk() iter.Seq[InternedString] {
	return func(yield func(InternedString) bool) {
		for _, name := range g.executionOrder {
			if !yield(name) {
				return
			}
		}
	}
}

// Dependencies returns the files path depends on.
func (g *DependencyGraph) Dependencies(path InternedString) []InternedString {
	return g.deps[path]
}

// Dependents returns the files that depend on path.
func (g *DependencyGraph) Dependents(path InternedString) []InternedString {
	return g.dependents[path]
}

// Len returns the number of files in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.deps)
}

// EdgeCount returns the number of dependency edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, deps := range g.deps {
		n += len(deps)
	}
	return n
}

package ports

import (
	"context"

	"go.trai.ch/tome/internal/core/domain"
)

// SourceWalker finds the source documents of a project.
//
//go:generate mockgen -source=discovery.go -destination=mocks/mock_discovery.go -package=mocks
type SourceWalker interface {
	// Discover returns the paths, relative to sourceDir, of all source documents.
	// The output directory is never descended into.
	Discover(sourceDir, outputDir string) ([]string, error)
}

// DependencyResolver builds the dependency graph of the discovered files.
type DependencyResolver interface {
	// Resolve returns a graph containing every file in files.
	Resolve(ctx context.Context, sourceDir string, files []string) (*domain.DependencyGraph, error)
}

package builder_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/parser"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/engine/builder"
)

func TestNoDependencies(t *testing.T) {
	g, err := builder.NoDependencies{}.Resolve(context.Background(), t.TempDir(), []string{"a.rst", "b.md"})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Zero(t, g.EdgeCount())
}

func TestIncludeResolver(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "index.rst", "Home\n====\n\n.. include:: parts/intro.rst\n\n.. literalinclude:: example.py\n")
	writeSource(t, dir, filepath.Join("parts", "intro.rst"), ".. include:: /shared.rst\n")
	writeSource(t, dir, "shared.rst", "Shared text.\n")
	writeSource(t, dir, "notes.md", "```{include} shared.rst\n```\n")
	files := []string{"index.rst", "notes.md", filepath.Join("parts", "intro.rst"), "shared.rst"}

	g, err := builder.NewIncludeResolver(parser.New()).Resolve(context.Background(), dir, files)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 3, g.EdgeCount())
	deps := func(file string) []string {
		var out []string
		for _, d := range g.Dependencies(domain.NewInternedString(file)) {
			out = append(out, d.String())
		}
		slices.Sort(out)
		return out
	}
	assert.Equal(t, []string{filepath.Join("parts", "intro.rst")}, deps("index.rst"))
	assert.Equal(t, []string{"shared.rst"}, deps(filepath.Join("parts", "intro.rst")))
	assert.Equal(t, []string{"shared.rst"}, deps("notes.md"))

	var order []string
	for file := range g.Walk() {
		order = append(order, file.String())
	}
	assert.Less(t, slices.Index(order, "shared.rst"), slices.Index(order, "index.rst"))
}

func TestIncludeResolver_UnreadableFile(t *testing.T) {
	_, err := builder.NewIncludeResolver(parser.New()).Resolve(context.Background(), t.TempDir(), []string{"gone.rst"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReadSourceFailed))
}

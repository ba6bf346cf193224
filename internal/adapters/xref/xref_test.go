package xref_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/xref"
	"go.trai.ch/tome/internal/core/domain"
)

func docs() []*domain.Document {
	return []*domain.Document{
		{Name: "guide/install", OutputPath: filepath.Join("guide", "install.html"), Title: "Install",
			Labels: []domain.Label{{Name: "setup", Line: 1}}},
		{Name: "index", OutputPath: "index.html", Title: "Home",
			Labels: []domain.Label{{Name: "top", Line: 1}, {Name: "setup", Line: 9}}},
	}
}

func TestCollect(t *testing.T) {
	inv := xref.Collect(docs())

	assert.Equal(t, map[string]xref.Target{
		"guide/install": {Doc: "guide/install", Title: "Install", URL: "guide/install.html"},
		"index":         {Doc: "index", Title: "Home", URL: "index.html"},
	}, inv.Documents)
	assert.Equal(t, map[string]xref.Target{
		"setup": {Doc: "guide/install", Title: "Install", URL: "guide/install.html#setup"},
		"top":   {Doc: "index", Title: "Home", URL: "index.html#top"},
	}, inv.Labels)
}

func TestFinisher_Finish(t *testing.T) {
	out := t.TempDir()
	f := xref.NewFinisher()
	assert.Equal(t, "xref-index", f.Name())

	require.NoError(t, f.Finish(context.Background(), &domain.Site{OutputDir: out, Documents: docs()}))

	data, err := os.ReadFile(filepath.Join(out, domain.XrefIndexFile))
	require.NoError(t, err)

	var inv xref.Inventory
	require.NoError(t, json.Unmarshal(data, &inv))
	assert.Equal(t, xref.Collect(docs()), &inv)
}

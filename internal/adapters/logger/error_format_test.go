package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tome/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "zerr wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	inner := zerr.With(zerr.New("cache entry corrupt"), "path", "ab.json")
	outer := zerr.With(zerr.Wrap(inner, "failed to load cache"), "dir", "_build/.tome-cache")

	entries := logger.CollectErrorEntriesExported(outer)

	assert.Len(t, entries, 2)
	assert.Equal(t, "_build/.tome-cache", entries[0].Metadata["dir"])
	assert.Equal(t, "ab.json", entries[1].Metadata["path"])
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "two entries",
			entries: []logger.ErrorEntry{{Message: "outer error"}, {Message: "inner error"}},
			want:    "Error: outer error\n\n  Caused by:\n    → inner error",
		},
		{
			name:    "metadata on main error",
			entries: []logger.ErrorEntry{{Message: "main error", Metadata: map[string]any{"key": "value"}}},
			want:    "Error: main error\n       key: value",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"cause_key": "cause_val"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      cause_key: cause_val",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}},
			want:    "Error: line1\n       line2",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": "m"},
			}},
			want: "Error: error\n       alpha: a\n       mike: m\n       zebra: z",
		},
		{
			name:    "empty entries",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}

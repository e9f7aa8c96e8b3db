package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/domain"
)

const sampleConfig = `
version = 1
titles = ["Available", "Chosen"]
target_keys = ["b"]

[units]
item = "repo"
items = "repos"

[search]
enabled = true
placeholder = "filter"
match = "fold"

[list]
lazy = false
height = 8
defer_ms = 5
show_description = true

[[items]]
key = "a"
title = "Alpha"

[[items]]
key = "b"
title = "Beta"
disabled = true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"Available", "Chosen"}, cfg.Titles)
	assert.Equal(t, []string{"b"}, cfg.TargetKeys)
	assert.Equal(t, "repos", cfg.Units.Items)
	assert.Equal(t, MatchFold, cfg.Search.Match)
	assert.Equal(t, "Not Found", cfg.Search.NotFound, "missing fields keep defaults")
	assert.False(t, cfg.List.Lazy)
	assert.Equal(t, 8, cfg.List.Height)
	assert.Equal(t, 5*time.Millisecond, cfg.List.Defer())
	assert.True(t, cfg.List.ShowDescription)
	require.Len(t, cfg.Items, 2)
	assert.Equal(t, domain.Item{Key: "b", Title: "Beta", Disabled: true}, cfg.Items[1])
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"duplicate keys", "[[items]]\nkey = \"a\"\n[[items]]\nkey = \"a\"\n"},
		{"empty key", "[[items]]\ntitle = \"x\"\n"},
		{"too many titles", "titles = [\"a\", \"b\", \"c\"]\n"},
		{"unknown match", "[search]\nmatch = \"regex\"\n"},
		{"negative defer", "[list]\ndefer_ms = -1\n"},
		{"bad toml", "titles = ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestParseSingleTitleGetsDefaultTarget(t *testing.T) {
	cfg, err := Parse([]byte(`titles = ["Mine"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mine", "Target"}, cfg.Titles)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceForPath(path, nil)

	cfg := DefaultConfig()
	cfg.Items = []domain.Item{{Key: "x", Title: "X"}, {Key: "y"}}
	cfg.TargetKeys = []string{"y"}

	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Items, loaded.Items)
	assert.Equal(t, cfg.TargetKeys, loaded.TargetKeys)
	assert.Equal(t, path, svc.Path())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceForPath(filepath.Join(t.TempDir(), "none.toml"), nil)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissing(t *testing.T) {
	svc := NewConfigServiceForPath("", nil)

	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "none.toml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadFromPathUnreadable(t *testing.T) {
	dir := t.TempDir()
	svc := NewConfigServiceForPath("", nil)

	// A directory cannot be read as a file
	_, err := svc.LoadFromPath(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)

	_, statErr := os.Stat(dir)
	require.NoError(t, statErr)
}

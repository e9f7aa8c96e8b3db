package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFor("items.toml"))
	assert.Equal(t, FormatYAML, FormatFor("items.YML"))
	assert.Equal(t, FormatYAML, FormatFor("items.yaml"))
	assert.Equal(t, FormatJSON, FormatFor("/tmp/items.json"))
	assert.Equal(t, FormatLines, FormatFor("items.txt"))
	assert.Equal(t, FormatLines, FormatFor("-"))
}

func TestDecodeLines(t *testing.T) {
	input := "a\tAlpha\n\n# comment\nb\n  c  \t  Gamma  \r\n"

	res, err := Decode(strings.NewReader(input), FormatLines)
	require.NoError(t, err)

	assert.Equal(t, []domain.Item{
		{Key: "a", Title: "Alpha"},
		{Key: "b"},
		{Key: "c", Title: "Gamma"},
	}, res.Items)
}

func TestDecodeStructuredFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, "target_keys = [\"b\"]\n[[items]]\nkey = \"a\"\n[[items]]\nkey = \"b\"\ndisabled = true\n"},
		{"yaml", FormatYAML, "target_keys: [b]\nitems:\n  - key: a\n  - key: b\n    disabled: true\n"},
		{"json", FormatJSON, `{"target_keys":["b"],"items":[{"key":"a"},{"key":"b","disabled":true}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(strings.NewReader(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, []domain.Item{{Key: "a"}, {Key: "b", Disabled: true}}, res.Items)
			assert.Equal(t, []string{"b"}, res.TargetKeys)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("items: [unclosed"), FormatYAML)
	require.Error(t, err)

	_, err = Decode(strings.NewReader("x"), Format("xml"))
	require.Error(t, err)
}

func TestLoadAllMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "items:\n  - key: a\n  - key: b\ntarget_keys: [a]\n")
	second := writeFile(t, dir, "second.txt", "c\tCharlie\n")

	res, err := LoadAll(context.Background(), []string{first, second})
	require.NoError(t, err)

	keys := make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []string{"a"}, res.TargetKeys)
}

func TestLoadAllRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "x\n")
	second := writeFile(t, dir, "b.txt", "x\n")

	_, err := LoadAll(context.Background(), []string{first, second})
	require.ErrorContains(t, err, `duplicate item key "x"`)
}

func TestLoadAllMissingFile(t *testing.T) {
	_, err := LoadAll(context.Background(), []string{filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
}

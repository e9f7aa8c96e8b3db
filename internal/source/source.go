// Package source loads transfer items from files and plain-text streams.
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"shuttle/internal/domain"
)

// Format identifies how an item source is encoded
type Format string

const (
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatLines Format = "lines"
)

// document is the on-disk shape for structured item files
type document struct {
	Items      []domain.Item `toml:"items" yaml:"items" json:"items"`
	TargetKeys []string      `toml:"target_keys" yaml:"target_keys" json:"target_keys"`
}

// Result is a decoded item source
type Result struct {
	Items      []domain.Item
	TargetKeys []string
}

// FormatFor picks a format from a file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatLines
	}
}

// Decode reads all of r in the given format
func Decode(r io.Reader, format Format) (*Result, error) {
	if format == FormatLines {
		return decodeLines(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	var doc document
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported item format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s items: %w", format, err)
	}

	return &Result{Items: doc.Items, TargetKeys: doc.TargetKeys}, nil
}

// decodeLines reads one item per line: "key" or "key<TAB>title".
// Blank lines and lines starting with '#' are skipped.
func decodeLines(r io.Reader) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, title, _ := strings.Cut(line, "\t")
		res.Items = append(res.Items, domain.Item{
			Key:   strings.TrimSpace(key),
			Title: strings.TrimSpace(title),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return res, nil
}

// LoadFile decodes a single item file
func LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer f.Close()

	res, err := Decode(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// LoadAll decodes every path concurrently and merges the results in argument order.
// Duplicate keys across or within files are rejected.
func LoadAll(ctx context.Context, paths []string) (*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(results...)
}

// Merge concatenates results, keeping the first occurrence order of target keys
func Merge(results ...*Result) (*Result, error) {
	merged := &Result{}
	seen := make(map[string]bool)
	seenTarget := make(map[string]bool)

	for _, res := range results {
		if res == nil {
			continue
		}
		for _, item := range res.Items {
			if item.Key == "" {
				return nil, fmt.Errorf("item with empty key")
			}
			if seen[item.Key] {
				return nil, fmt.Errorf("duplicate item key %q", item.Key)
			}
			seen[item.Key] = true
			merged.Items = append(merged.Items, item)
		}
		for _, key := range res.TargetKeys {
			if !seenTarget[key] {
				seenTarget[key] = true
				merged.TargetKeys = append(merged.TargetKeys, key)
			}
		}
	}

	return merged, nil
}

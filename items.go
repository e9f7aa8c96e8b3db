package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"shuttle/internal/config"
	"shuttle/internal/source"
)

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
func stdinPiped(stdin *os.File) bool {
	if stdin == nil {
		return false
	}
	return !term.IsTerminal(int(stdin.Fd()))
}

// loadItems appends items from files and stdin to the config items, in that order.
// Target keys from every source are merged as well.
func loadItems(ctx context.Context, cfg *config.Config, files []string, stdin io.Reader, piped bool) error {
	results := []*source.Result{{Items: cfg.Items, TargetKeys: cfg.TargetKeys}}

	if len(files) > 0 {
		res, err := source.LoadAll(ctx, files)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}
		results = append(results, res)
	}

	if piped && stdin != nil {
		res, err := source.Decode(stdin, source.FormatLines)
		if err != nil {
			return fmt.Errorf("failed to read items from stdin: %w", err)
		}
		results = append(results, res)
	}

	merged, err := source.Merge(results...)
	if err != nil {
		return fmt.Errorf("failed to merge items: %w", err)
	}
	cfg.Items = merged.Items
	cfg.TargetKeys = merged.TargetKeys
	return nil
}

// writeResult prints the accepted target keys
func writeResult(w io.Writer, keys []string, asJSON bool) error {
	if keys == nil {
		keys = []string{}
	}
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(keys)
	}
	for _, key := range keys {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	return nil
}

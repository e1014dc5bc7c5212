// Package history keeps the append-only JSON log of translation requests.
//
// The whole file is read and rewritten on every append. A missing or
// unreadable file is treated as an empty history; only write failures are
// reported.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/valpere/multitran/internal"
	"github.com/valpere/multitran/internal/console"
	"github.com/valpere/multitran/internal/translator"
)

const separatorWidth = 40

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored entries in save order, or an empty slice when the
// file is missing or does not hold a JSON array of entries.
func (s *Store) Load() []internal.HistoryEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []internal.HistoryEntry{}
	}

	var entries []internal.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return []internal.HistoryEntry{}
	}
	return entries
}

// Append adds entry to the end of the history and rewrites the file.
func (s *Store) Append(entry internal.HistoryEntry) error {
	entries := append(s.Load(), entry)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// Clear deletes the history file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}

// Display prints the stored history to w.
func (s *Store) Display(w io.Writer, langs translator.Languages) error {
	return Render(w, s.Load(), langs)
}

// Render prints each entry's original text followed by its translations in
// the order they were requested.
func Render(w io.Writer, entries []internal.HistoryEntry, langs translator.Languages) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Translation history is empty.")
		return err
	}

	separator := strings.Repeat("-", separatorWidth)
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s %s\n", console.Heading("Original text:"), entry.Original); err != nil {
			return err
		}
		for _, code := range entry.Translations.Codes() {
			text, ok := entry.Translations.Get(code)
			if !ok {
				text = console.Muted("<unavailable>")
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", console.Language(langs.Name(code)), text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	return nil
}

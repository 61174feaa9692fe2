// Package sink persists sealed batches.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dglai-harvest/pkg/domain"
)

// FileSink writes each batch into its own directory under Root:
//
//	<root>/<key>/extracted_data_<key>.json
//	<root>/<key>/abbreviations_not_found_<key>.log
//	<root>/<key>/failed_sessions_<key>.log
//
// The log files exist only when they have content; an empty list removes
// any file left by an earlier attempt at the same batch. Every file is
// written to a temporary name and renamed into place; the JSON file goes last
// so its presence means the batch is complete.
type FileSink struct {
	Root   string
	logger *slog.Logger
}

// NewFileSink returns a sink rooted at root.
func NewFileSink(root string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{
		Root:   root,
		logger: logger.With("component", "filesink"),
	}
}

// Dir returns the directory of a batch.
func (s *FileSink) Dir(key string) string {
	return filepath.Join(s.Root, key)
}

// EntriesPath returns the path of a batch's entries file.
func (s *FileSink) EntriesPath(key string) string {
	return filepath.Join(s.Dir(key), "extracted_data_"+key+".json")
}

// UnmatchedPath returns the path of a batch's unmatched-labels log.
func (s *FileSink) UnmatchedPath(key string) string {
	return filepath.Join(s.Dir(key), "abbreviations_not_found_"+key+".log")
}

// FailuresPath returns the path of a batch's failed-sessions log.
func (s *FileSink) FailuresPath(key string) string {
	return filepath.Join(s.Dir(key), "failed_sessions_"+key+".log")
}

// Seal writes the batch artifacts.
func (s *FileSink) Seal(_ context.Context, b *domain.Batch) error {
	if !b.Sealed() {
		return fmt.Errorf("sink: batch %s is not sealed", b.Key)
	}
	if err := os.MkdirAll(s.Dir(b.Key), 0o755); err != nil {
		return fmt.Errorf("sink: create batch dir: %w", err)
	}

	diags := b.Diagnostics()
	diagLines := make([]string, len(diags))
	for i, d := range diags {
		diagLines[i] = d.Line()
	}
	if err := writeLog(s.UnmatchedPath(b.Key), diagLines); err != nil {
		return err
	}

	failures := b.Failures()
	failureLines := make([]string, len(failures))
	for i, f := range failures {
		failureLines[i] = f.Line()
	}
	if err := writeLog(s.FailuresPath(b.Key), failureLines); err != nil {
		return err
	}

	data, err := EncodeEntries(b.Entries())
	if err != nil {
		return fmt.Errorf("sink: encode batch %s: %w", b.Key, err)
	}
	if err := writeAtomic(s.EntriesPath(b.Key), data); err != nil {
		return err
	}

	s.logger.Debug("batch written", slog.String("batch", b.Key), slog.String("dir", s.Dir(b.Key)))
	return nil
}

// Sealed reports whether the entries file of key exists.
func (s *FileSink) Sealed(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.EntriesPath(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("sink: stat %s: %w", key, err)
}

// EncodeEntries renders entries keyed by identifier with four-space
// indentation. Non-ASCII text is written as is.
func EncodeEntries(entries map[string]*domain.DictionaryEntry) ([]byte, error) {
	if entries == nil {
		entries = map[string]*domain.DictionaryEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeLog writes one line per record, or removes path when there are none.
func writeLog(path string, lines []string) error {
	if len(lines) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("sink: remove stale %s: %w", path, err)
		}
		return nil
	}
	return writeAtomic(path, []byte(strings.Join(lines, "\n")+"\n"))
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("sink: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sink: sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sink: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("sink: rename %s: %w", path, err)
	}
	return nil
}

// Package store loads a kaam task file into memory and rewrites it.
//
// Entries are addressed by ordinal, their 1-based position in the file as
// loaded. Ordinals are never persisted; removing or sorting entries
// renumbers them on the next load.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mark3labs/kaam/internal/backup"
	"github.com/mark3labs/kaam/internal/config"
	"github.com/mark3labs/kaam/internal/logger"
	"github.com/mark3labs/kaam/internal/task"
)

var (
	// ErrNoArguments is returned by operations that need at least one argument.
	ErrNoArguments = errors.New("at least one argument is required")

	// ErrMultiline is returned for task text that would span several lines.
	ErrMultiline = errors.New("task text must be a single line")
)

// Store is the in-memory copy of the task file. Lines are kept exactly as
// stored, without their newline, and decoded only when an operation needs to.
type Store struct {
	lines  []string
	path   string
	backup *backup.Manager

	// the file did not end in a newline when loaded
	unterminated bool
}

// Open reads the task file named by cfg, creating it (and its directory)
// when missing.
func Open(cfg *config.Config) (*Store, error) {
	s := &Store{
		path:   cfg.Path,
		backup: backup.New(cfg.BackupPath, cfg.NoBackup),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating task directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening task file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading task file: %w", err)
	}

	s.lines = splitLines(string(data))
	s.unterminated = len(data) > 0 && data[len(data)-1] != '\n'
	logger.Debug("Loaded %d lines from %s", len(s.lines), s.path)
	return nil
}

// splitLines splits on "\n", dropping one trailing newline and any "\r"
// left at the end of a line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.lines) }

// Lines returns a copy of the raw stored lines.
func (s *Store) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Entries decodes every line.
func (s *Store) Entries() ([]task.Entry, error) {
	entries := make([]task.Entry, 0, len(s.lines))
	for i, line := range s.lines {
		e, err := decodeAt(line, i+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// List renders every entry in display format and writes them in one call.
func (s *Store) List(w io.Writer, r *task.Renderer) error {
	var b strings.Builder
	for i, line := range s.lines {
		e, err := decodeAt(line, i+1)
		if err != nil {
			return err
		}
		b.WriteString(r.EncodeDisplay(e, i+1))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing list: %w", err)
	}
	return nil
}

// Raw writes the bare text of every entry matching f, one write per entry.
func (s *Store) Raw(w io.Writer, f task.Filter) error {
	for i, line := range s.lines {
		e, err := decodeAt(line, i+1)
		if err != nil {
			return err
		}
		if !f.Match(e) {
			continue
		}
		if _, err := io.WriteString(w, e.EncodeRaw()); err != nil {
			return fmt.Errorf("writing raw output: %w", err)
		}
	}
	return nil
}

// Add appends a pending entry for every text that is not blank. Existing
// lines are not rewritten. It returns the number of entries added.
func (s *Store) Add(texts []string) (int, error) {
	if len(texts) == 0 {
		return 0, ErrNoArguments
	}

	var added []string
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if strings.ContainsAny(text, "\r\n") {
			return 0, fmt.Errorf("%w: %q", ErrMultiline, text)
		}
		added = append(added, task.New(text).EncodeStorage())
	}
	if len(added) == 0 {
		logger.Debug("Nothing to add: all %d texts were blank", len(texts))
		return 0, nil
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening task file: %w", err)
	}

	w := bufio.NewWriter(f)
	if s.unterminated {
		_ = w.WriteByte('\n')
	}
	for _, line := range added {
		_, _ = w.WriteString(line)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("appending to task file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing task file: %w", err)
	}

	for _, line := range added {
		s.lines = append(s.lines, strings.TrimSuffix(line, "\n"))
	}
	s.unterminated = false
	logger.Debug("Appended %d entries to %s", len(added), s.path)
	return len(added), nil
}

// Remove drops the entries at the given ordinals and rewrites the file.
func (s *Store) Remove(positions []string) error {
	if len(positions) == 0 {
		return ErrNoArguments
	}
	targets := s.parsePositions(positions)

	kept := make([]string, 0, len(s.lines))
	for i, line := range s.lines {
		if targets[i+1] {
			continue
		}
		kept = append(kept, line)
	}

	logger.Debug("Removing %d of %d entries", len(s.lines)-len(kept), len(s.lines))
	return s.rewrite(kept)
}

// Done toggles the completion state of the entries at the given ordinals.
// Applying it twice with the same ordinals restores the original file.
func (s *Store) Done(positions []string) error {
	if len(positions) == 0 {
		return ErrNoArguments
	}
	targets := s.parsePositions(positions)

	out := make([]string, len(s.lines))
	for i, line := range s.lines {
		if !targets[i+1] {
			out[i] = line
			continue
		}
		e, err := decodeAt(line, i+1)
		if err != nil {
			return err
		}
		e.Toggle()
		out[i] = strings.TrimSuffix(e.EncodeStorage(), "\n")
	}

	return s.rewrite(out)
}

// Edit replaces the text of the entry at position, keeping its state.
// A position that matches no entry rewrites the file unchanged.
func (s *Store) Edit(position, text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %q", ErrMultiline, text)
	}
	targets := s.parsePositions([]string{position})

	out := make([]string, len(s.lines))
	for i, line := range s.lines {
		if !targets[i+1] {
			out[i] = line
			continue
		}
		e, err := decodeAt(line, i+1)
		if err != nil {
			return err
		}
		e.Text = text
		out[i] = strings.TrimSuffix(e.EncodeStorage(), "\n")
	}

	return s.rewrite(out)
}

// Sort moves pending entries ahead of done ones. Relative order inside
// each group is kept, so sorting twice changes nothing.
func (s *Store) Sort() error {
	pending := make([]string, 0, len(s.lines))
	var done []string
	for i, line := range s.lines {
		e, err := decodeAt(line, i+1)
		if err != nil {
			return err
		}
		if e.Done {
			done = append(done, line)
		} else {
			pending = append(pending, line)
		}
	}

	return s.rewrite(append(pending, done...))
}

// Reset backs the file up (unless backups are disabled) and deletes it.
// If the backup fails the file is left untouched.
func (s *Store) Reset() error {
	if s.backup.Enabled() {
		if err := s.backup.Save(s.path); err != nil {
			logger.Error("Backup failed, keeping %s: %v", s.path, err)
			return fmt.Errorf("couldn't back up the task file, nothing was deleted: %w", err)
		}
	}

	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing task file: %w", err)
	}
	s.lines = nil
	s.unterminated = false
	logger.Info("Reset %s", s.path)
	return nil
}

// Restore copies the backup slot over the task file.
func (s *Store) Restore() error {
	if err := s.backup.Restore(s.path); err != nil {
		return err
	}
	return s.load()
}

// rewrite replaces the file content with lines. The new content is written
// to a temporary file in the same directory and renamed into place.
func (s *Store) rewrite(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(s.path, []byte(b.String())); err != nil {
		return fmt.Errorf("rewriting task file: %w", err)
	}

	s.lines = lines
	s.unterminated = false
	logger.Debug("Rewrote %s with %d entries", s.path, len(lines))
	return nil
}

// parsePositions turns ordinal arguments into a set. An argument selects
// an entry only when it is the ordinal written in plain decimal, so "01",
// "+1" and " 1" select nothing. Anything else is skipped.
func (s *Store) parsePositions(args []string) map[int]bool {
	set := make(map[int]bool, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || strconv.Itoa(n) != arg {
			logger.Warn("Ignoring position %q: not a plain number", arg)
			continue
		}
		if n < 1 || n > len(s.lines) {
			logger.Warn("Ignoring position %d: list has %d entries", n, len(s.lines))
			continue
		}
		set[n] = true
	}
	return set
}

func decodeAt(line string, ordinal int) (task.Entry, error) {
	e, err := task.DecodeStorage(line)
	if err != nil {
		return task.Entry{}, fmt.Errorf("entry %d: %w", ordinal, err)
	}
	return e, nil
}

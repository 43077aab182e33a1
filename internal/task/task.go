// Package task encodes task entries to and from the lines of a kaam file.
//
// A stored line is a four byte completion marker followed by the task text:
//
//	[ ] buy milk
//	[*] call the plumber
package task

import (
	"errors"
	"fmt"
)

const (
	DoneMarker    = "[*] "
	PendingMarker = "[ ] "

	// MarkerWidth is the byte length of both markers.
	MarkerWidth = 4
)

// ErrMalformedLine is returned when a stored line is too short to hold a marker.
var ErrMalformedLine = errors.New("malformed task line")

// Entry is a single task.
type Entry struct {
	Text string
	Done bool
}

// New returns a pending entry.
func New(text string) Entry {
	return Entry{Text: text}
}

// Toggle flips the completion state.
func (e *Entry) Toggle() {
	e.Done = !e.Done
}

// EncodeStorage returns the on-disk line, newline included.
func (e Entry) EncodeStorage() string {
	if e.Done {
		return DoneMarker + e.Text + "\n"
	}
	return PendingMarker + e.Text + "\n"
}

// EncodeRaw returns the bare text line used for scripting output.
func (e Entry) EncodeRaw() string {
	return e.Text + "\n"
}

// DecodeStorage parses a stored line without its trailing newline.
// Only an exact DoneMarker prefix means done; any other four bytes,
// including a corrupted marker, decode as a pending entry.
func DecodeStorage(line string) (Entry, error) {
	if len(line) < MarkerWidth {
		return Entry{}, fmt.Errorf("%w: %q is shorter than the %d byte marker", ErrMalformedLine, line, MarkerWidth)
	}
	return Entry{
		Text: line[MarkerWidth:],
		Done: line[:MarkerWidth] == DoneMarker,
	}, nil
}

// Filter selects entries for raw output.
type Filter string

const (
	FilterPending Filter = "kaam"
	FilterDone    Filter = "done"
)

// ParseFilter accepts "kaam" (pending) or "done".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterPending, FilterDone:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter: %s (must be %s or %s)", s, FilterPending, FilterDone)
	}
}

// Match reports whether e belongs to the filter.
func (f Filter) Match(e Entry) bool {
	switch f {
	case FilterDone:
		return e.Done
	case FilterPending:
		return !e.Done
	default:
		return false
	}
}

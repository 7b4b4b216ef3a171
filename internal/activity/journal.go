// Package activity records what happened during a session as JSON lines.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Actions recorded by a session.
const (
	ActionStart      = "start"
	ActionReveal     = "reveal"
	ActionSelect     = "select"
	ActionPathfinder = "pathfinder"
	ActionCenter     = "center"
	ActionZoom       = "zoom"
)

// Entry represents a single journal entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Node      int       `json:"node,omitempty"`
	Nodes     []int     `json:"nodes,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Journal keeps the entries of one session in memory and mirrors them to w
// when w is set.
type Journal struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	entries []Entry
	now     func() time.Time
}

// New creates a journal writing to w. A nil w keeps entries in memory only.
func New(w io.Writer) *Journal {
	return &Journal{w: w, now: time.Now}
}

// Open creates a journal appending to the file at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	j := New(f)
	j.closer = f
	return j, nil
}

// Close closes the underlying file, if the journal owns one.
func (j *Journal) Close() error {
	if j == nil || j.closer == nil {
		return nil
	}
	return j.closer.Close()
}

// Record appends an entry. A nil journal discards it.
func (j *Journal) Record(action string, node int, details string) error {
	return j.add(Entry{Action: action, Node: node, Details: details})
}

// RecordNodes appends an entry that concerns several nodes.
func (j *Journal) RecordNodes(action string, nodes []int, details string) error {
	return j.add(Entry{Action: action, Nodes: append([]int(nil), nodes...), Details: details})
}

func (j *Journal) add(e Entry) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	e.Timestamp = j.now()
	j.entries = append(j.entries, e)
	if j.w == nil {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(j.w, "%s\n", data)
	return err
}

// Entries returns a copy of everything recorded so far, oldest first.
func (j *Journal) Entries() []Entry {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Last returns the most recent entry.
func (j *Journal) Last() (Entry, bool) {
	if j == nil {
		return Entry{}, false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}

// Read parses a JSON-lines journal. Malformed lines are skipped.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e Entry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}

// ReadFile parses the journal at path. A missing file has no entries.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Filter returns the entries with the given action.
func Filter(entries []Entry, action string) []Entry {
	var out []Entry
	for _, e := range entries {
		if strings.EqualFold(e.Action, action) {
			out = append(out, e)
		}
	}
	return out
}

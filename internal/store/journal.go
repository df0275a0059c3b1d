package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one journal line.
type Entry struct {
	Seq    int       `json:"seq"`
	Time   time.Time `json:"time"`
	Action Action    `json:"action"`
}

// Journal is a Writer backed by an append-only JSONL file. The file is synced
// after every Append so a killed shell still leaves a complete record.
//
// Session identity: "<unix-timestamp>-<short-uuid>.jsonl".
type Journal struct {
	file      *os.File
	mu        sync.Mutex
	path      string
	sessionID string
	seq       int
	now       func() time.Time
}

// NewJournal creates the session journal in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8])
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	return &Journal{
		file:      f,
		path:      path,
		sessionID: sessionID,
		now:       time.Now,
	}, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string { return j.path }

// SessionID returns the "<unix-timestamp>-<short-uuid>" session identity.
func (j *Journal) SessionID() string { return j.sessionID }

// Append writes a as a JSON line and syncs. It is safe to call from multiple
// goroutines.
func (j *Journal) Append(a Action) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	e := Entry{Seq: j.seq + 1, Time: j.now().UTC(), Action: a}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	j.seq = e.Seq
	return nil
}

// Close closes the underlying file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// ReadJournal reads every entry of the journal at path. Malformed lines are
// skipped with a warning.
func ReadJournal(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return decodeJournal(f, path)
}

func decodeJournal(r io.Reader, name string) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			slog.Warn("store: skipping malformed journal line", "file", name, "line", lineNo, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("store: read %q: %w", name, err)
	}
	return entries, nil
}

// Replay applies entries in order to an empty state and returns the result.
func Replay(entries []Entry) State {
	st := State{Breakpoints: make(map[string][]int)}
	for _, e := range entries {
		e.Action.apply(&st)
	}
	return st
}

// EnforceRetention removes the oldest journal files in dir, keeping at most
// maxKeep files. If maxKeep is 0, no files are removed. Returns nil if dir
// does not exist.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files) // timestamp-prefixed names sort chronologically

	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}

package source

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Match is one project search hit.
type Match struct {
	File File
	Line int // 1-based
	Text string
}

// Search finds lines containing query (case-insensitive) across files, in
// file order. At most limit matches are returned; limit <= 0 means no limit.
// Unreadable files are skipped and reported in the returned error, which is
// non-nil only when every file failed.
//
// Files are scanned concurrently; results are merged in file order.
func Search(root string, files []File, query string, limit int) ([]Match, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	perFile := make([][]Match, len(files))
	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			content, err := Read(root, f)
			if err != nil {
				errs[i] = err
				return nil
			}
			perFile[i] = matchLines(f, content, q, limit)
			return nil
		})
	}
	_ = g.Wait()

	var (
		matches []Match
		failed  int
		lastErr error
	)
	for i := range files {
		if errs[i] != nil {
			failed++
			lastErr = errs[i]
			continue
		}
		for _, m := range perFile[i] {
			matches = append(matches, m)
			if limit > 0 && len(matches) >= limit {
				return matches, nil
			}
		}
	}
	if len(files) > 0 && failed == len(files) {
		return nil, fmt.Errorf("source: search: %w", lastErr)
	}
	return matches, nil
}

// matchLines returns up to limit lines of content containing the lower-cased
// query q.
func matchLines(f File, content, q string, limit int) []Match {
	var out []Match
	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(strings.ToLower(line), q) {
			continue
		}
		out = append(out, Match{File: f, Line: i + 1, Text: strings.TrimSpace(line)})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

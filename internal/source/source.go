// Package source discovers the project files a debugging session can open,
// extracts their symbols and searches across them.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is a discovered source file.
type File struct {
	ID   string // slash-separated path relative to the project root; stable across runs
	Path string // path relative to the project root in OS form
	Name string // base name
	Ext  string // lower-case extension including the dot (e.g. ".go")
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// List discovers source files under root whose extension is in exts.
// An empty exts accepts every regular file. Hidden directories, vendor and
// node_modules are skipped. The result is sorted by ID.
func List(root string, exts []string) ([]File, error) {
	allow := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allow[e] = true
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if len(allow) > 0 && !allow[ext] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, File{
			ID:   filepath.ToSlash(rel),
			Path: rel,
			Name: name,
			Ext:  ext,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

// Read returns the content of f relative to root.
func Read(root string, f File) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, f.Path))
	if err != nil {
		return "", fmt.Errorf("source: read %s: %w", f.ID, err)
	}
	return string(data), nil
}

// Find returns the file with the given ID.
func Find(files []File, id string) (File, bool) {
	for _, f := range files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

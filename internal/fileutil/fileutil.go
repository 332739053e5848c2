// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotContentFile = errors.New("not a content file (want .yaml, .yml or .json)")
	ErrNoContentFiles = errors.New("no content files found")
)

// ContentExtensions are the accepted content file extensions.
var ContentExtensions = []string{".yaml", ".yml", ".json"}

// IsContentFile reports whether path has a content file extension.
func IsContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ContentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindContentFiles returns the content files under root, sorted. A file root
// is returned alone when it has a content extension. Hidden directories
// are skipped.
func FindContentFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !IsContentFile(root) {
			return nil, fmt.Errorf("%w: %s", ErrNotContentFile, root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsContentFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContentFiles, root)
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath places name in outDir, or next to input when outDir is empty.
// When input lives under root, its relative directory is kept inside outDir
// so batch renders of nested folders do not collide.
func OutputPath(root, input, outDir, name string) string {
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	if root != "" {
		if rel, err := filepath.Rel(root, filepath.Dir(input)); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return filepath.Join(outDir, rel, name)
		}
	}
	return filepath.Join(outDir, name)
}

// WriteFileAtomic writes data to a temporary file in path's directory and
// renames it over path, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "modern" -> false (preset name)
//   - "./firm.yaml" -> true (relative path)
//   - "/etc/invoice2pdf/firm.yaml" -> true (absolute)
//   - "C:\templates\firm.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

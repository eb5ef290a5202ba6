package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of files picked up from directories.
const SourceExt = ".cs"

// ErrNoInput is returned when no source file matches the arguments.
var ErrNoInput = errors.New("no source files")

// skipDirs: каталоги сборки и VCS, в которые не заходим.
var skipDirs = map[string]bool{
	".git": true, ".vs": true, "bin": true, "obj": true, "node_modules": true,
}

// Discover expands file and directory arguments into a sorted, duplicate
// free list of source files. Files named explicitly are kept whatever their
// extension; directories contribute *.cs files not rejected by exclude.
func Discover(args []string, exclude func(path string) bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), SourceExt) {
				return nil
			}
			if exclude != nil && exclude(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInput
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// Copyright © 2024 The MNL authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the file extension of mnl source files.
const SourceExt = ".mnl"

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// source files found recursively under the given directory.  Non-pattern
// arguments pass through unchanged.  Paths matching any of excludes are
// dropped.
func expandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findSourceFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else {
			out = append(out, arg)
		}
	}
	return filterExcludes(out, excludes), nil
}

func findSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func filterExcludes(paths []string, excludes []string) []string {
	if len(excludes) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if !matchesAny(path, excludes) {
			out = append(out, path)
		}
	}
	return out
}

// matchesAny reports whether path, its base name, or any one of its
// directory components matches a pattern.
func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		for _, elem := range splitPath(path) {
			if ok, _ := filepath.Match(pattern, elem); ok {
				return true
			}
		}
	}
	return false
}

func splitPath(path string) []string {
	var elems []string
	for path != "" {
		dir, file := filepath.Split(path)
		if file != "" {
			elems = append(elems, file)
		}
		dir = strings.TrimSuffix(dir, string(filepath.Separator))
		if dir == path {
			break
		}
		path = dir
	}
	return elems
}

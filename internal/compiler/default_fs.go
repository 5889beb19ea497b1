// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"os"
	"path/filepath"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/fs"
)

// EnvSearchPath lists extra source roots, separated like PATH. They are
// searched before the platform data directories.
const EnvSearchPath = "PHERES_PATH"

// NewDefaultFS searches PHERES_PATH and then the platform data directories
// for sources.
func NewDefaultFS(lookup func(string) (string, bool)) (asl.FileSystem, error) {
	roots := searchRoots(lookup)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		rf, err := fs.NewFileSystemLocal(root)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}

func searchRoots(lookup func(string) (string, bool)) []string {
	var roots []string
	if v, ok := lookup(EnvSearchPath); ok {
		for _, p := range filepath.SplitList(v) {
			if p != "" {
				roots = append(roots, p)
			}
		}
	}
	expand := func(s string) string {
		v, _ := lookup(s)
		return v
	}
	for _, p := range platformRoots(lookup) {
		roots = append(roots, os.Expand(p, expand))
	}
	return roots
}

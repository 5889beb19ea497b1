// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build aix || darwin || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris

package compiler

import (
	"path/filepath"
	"strings"
)

const defaultDataDirs = "/usr/local/share/:/usr/share/"

// platformRoots follows the XDG base directory layout: the user data home
// first, then every entry of XDG_DATA_DIRS.
func platformRoots(lookup func(string) (string, bool)) []string {
	var roots []string
	if home, ok := lookup("XDG_DATA_HOME"); ok && home != "" {
		roots = append(roots, filepath.Join(home, "pheres"))
	} else if home, ok := lookup("HOME"); ok && home != "" {
		roots = append(roots, filepath.Join(home, ".local", "share", "pheres"))
	}
	dirs, ok := lookup("XDG_DATA_DIRS")
	if !ok || dirs == "" {
		dirs = defaultDataDirs
	}
	for _, dir := range strings.Split(dirs, ":") {
		if dir == "" {
			continue
		}
		roots = append(roots, filepath.Join(dir, "pheres"))
	}
	return roots
}

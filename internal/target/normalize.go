// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package target turns compile targets into the rooted, slash separated
// paths that file systems are opened with.
package target

import (
	"net/url"
	"path"
	"path/filepath"
)

// Normalize accepts a path or a URI. Paths and file URIs, including the
// opaque file:agents form, become clean paths rooted at "/" and resolved
// against whichever search root opens them. URIs with any other scheme are
// returned untouched.
func Normalize(target string) string {
	p := filepath.ToSlash(target)
	u, err := url.Parse(p)
	if err == nil && u.Scheme != "" {
		if u.Scheme != "file" {
			return target
		}
		p = u.Path
		if p == "" {
			p = u.Opaque
		}
	}
	return path.Clean("/" + p)
}

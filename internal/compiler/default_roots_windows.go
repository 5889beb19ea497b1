// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package compiler

import (
	"path/filepath"
)

func platformRoots(lookup func(string) (string, bool)) []string {
	var roots []string
	if local, ok := lookup("LOCALAPPDATA"); ok && local != "" {
		roots = append(roots, filepath.Join(local, "pheres"))
	} else if profile, ok := lookup("USERPROFILE"); ok && profile != "" {
		roots = append(roots, filepath.Join(profile, "AppData", "Local", "pheres"))
	}
	if data, ok := lookup("ProgramData"); ok && data != "" {
		roots = append(roots, filepath.Join(data, "pheres"))
	} else {
		drive, _ := lookup("SystemDrive")
		roots = append(roots, filepath.Join(drive+`\`, "ProgramData", "pheres"))
	}
	return roots
}

// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"slices"
	"sync"
)

// Reporter collects exceptions raised while compiling a set of files. Lexical
// and syntactic problems are recorded and compilation carries on; anything
// else stops it.
type Reporter interface {
	// Report records e. A non-nil return means e is fatal.
	Report(Exception) Exception
	// Reported returns everything recorded so far in report order.
	Reported() []Exception
}

// NewReporter returns a Reporter that is safe for concurrent use. Codes in
// nonFatal are tolerated in addition to the diagnostic codes.
func NewReporter(nonFatal []string) Reporter {
	r := &reporter{nonFatal: make(map[string]bool, len(defaultNonFatal)+len(nonFatal))}
	for code := range defaultNonFatal {
		r.nonFatal[code] = true
	}
	for _, code := range nonFatal {
		r.nonFatal[code] = true
	}
	return r
}

type reporter struct {
	mu       sync.Mutex
	reported []Exception
	nonFatal map[string]bool
}

func (r *reporter) Report(e Exception) Exception {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reported = append(r.reported, e)
	if r.nonFatal[e.Code()] {
		return nil
	}
	return e
}

func (r *reporter) Reported() []Exception {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.reported)
}

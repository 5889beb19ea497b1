// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"
	"io"

	"github.com/pheres-lang/pheres/internal/iter"
)

// DumpTokens writes one line per token: kind, byte range and quoted text.
func DumpTokens(ctx context.Context, w io.Writer, m *Module, skipTrivia bool) error {
	indices := make([]int, 0, m.Lexed.Len())
	for i := 0; i < m.Lexed.Len(); i = i + 1 {
		indices = append(indices, i)
	}
	var stream = iter.NewSlice(indices)
	if skipTrivia {
		stream = iter.NewIteratorFilter(stream, iter.FilterFunc[int](func(ctx context.Context, i int) bool {
			return !m.Lexed.Kind(i).IsTrivia()
		}))
	}
	defer stream.Close(ctx)

	if _, err := fmt.Fprintf(w, "# %s\n", m.URI); err != nil {
		return err
	}
	for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
		i := tok.Value()
		start, end := m.Lexed.Range(i)
		if _, err := fmt.Fprintf(w, "%-16s%d..%d\t%q\n", m.Lexed.Kind(i), start, end, m.Lexed.Text(i)); err != nil {
			return err
		}
	}
	return nil
}

// DumpTree writes the outline of the module's syntax tree.
func DumpTree(w io.Writer, m *Module) error {
	if _, err := fmt.Fprintf(w, "# %s\n", m.URI); err != nil {
		return err
	}
	_, err := io.WriteString(w, m.Parsed.Root.String())
	return err
}

// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"log/slog"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
	"github.com/pheres-lang/pheres/internal/fs"
	"github.com/pheres-lang/pheres/internal/lexed"
	"github.com/pheres-lang/pheres/internal/parser"
)

type SubCompilerAgentSpeak struct {
	Logger *slog.Logger
}

func (self *SubCompilerAgentSpeak) CompileFile(ctx context.Context, r exc.Reporter, file asl.File) (*Module, error) {
	uri := file.Path(ctx)
	text, err := fs.ReadAll(ctx, file)
	if err != nil {
		return nil, r.Report(exc.WrapUnknown(exc.Location{URI: uri}, err))
	}

	l := lexed.New(ctx, text)
	parsed := parser.Parse(l)
	module := &Module{
		URI:    uri,
		Lexed:  l,
		Parsed: parsed,
	}
	if self.Logger != nil {
		self.Logger.DebugContext(ctx, "parsed file",
			"uri", uri,
			"tokens", l.Len(),
			"lexical_errors", len(l.Errors()),
			"syntax_errors", len(parsed.Errors),
			"unexpected_eof", parsed.UnexpectedEOF,
		)
	}

	for _, e := range Diagnose(module) {
		if fatal := r.Report(e); fatal != nil {
			return nil, fatal
		}
	}
	return module, nil
}

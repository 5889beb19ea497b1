// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"log/slog"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
)

type SubCompiler interface {
	CompileFile(ctx context.Context, r exc.Reporter, file asl.File) (*Module, error)
}

func DefaultSubCompilers(logger *slog.Logger) map[asl.FileKind]SubCompiler {
	return map[asl.FileKind]SubCompiler{
		asl.FileKindAgentSpeak: &SubCompilerAgentSpeak{Logger: logger},
	}
}

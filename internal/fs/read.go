// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
)

const readChunk = 4096

// ReadAll drains the body of a file into a string.
func ReadAll(ctx context.Context, f asl.File) (string, error) {
	body, err := f.Body(ctx)
	if err != nil {
		return "", exc.WrapUnknown(exc.Location{URI: f.Path(ctx)}, err)
	}
	defer body.Close(ctx)

	var b strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		chunk, err := body.Read(ctx, readChunk)
		_, _ = b.Write(chunk)
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", exc.WrapUnknown(exc.Location{URI: f.Path(ctx)}, err)
		}
	}
}

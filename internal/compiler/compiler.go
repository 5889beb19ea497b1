// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package compiler drives the AgentSpeak front end over a set of targets. It
// opens every target through a file system, runs the lexer and parser on each
// source file and collects located diagnostics.
package compiler

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
	"github.com/pheres-lang/pheres/internal/lexed"
	"github.com/pheres-lang/pheres/internal/parser"
	"github.com/pheres-lang/pheres/internal/target"
)

type Compiler interface {
	Compile(ctx context.Context, req *Request) (*Response, error)
}

type Request struct {
	// Files are paths or URIs. Directories expand to the sources they hold.
	Files []string
}

type Response struct {
	// Modules are in the order their targets were requested.
	Modules []*Module
}

// Module is the front end output for one source file.
type Module struct {
	URI    string
	Lexed  *lexed.LexedStr
	Parsed *parser.Parsed
}

type Option func(c *compiler) error

func OptionWithFS(fs asl.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithLogger(logger *slog.Logger) Option {
	return func(c *compiler) error {
		c.Logger = logger
		return nil
	}
}

func OptionWithMaxConcurrency(max int) Option {
	return func(c *compiler) error {
		if max < 0 {
			return fmt.Errorf("max concurrency must not be negative, got %d", max)
		}
		c.MaxConcurrency = max
		return nil
	}
}

func New(opts ...Option) (Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.SubCompilers == nil {
		c.SubCompilers = DefaultSubCompilers(c.Logger)
	}
	return c, nil
}

type compiler struct {
	LookupENV      func(string) (string, bool)
	FS             asl.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Logger         *slog.Logger
	SubCompilers   map[asl.FileKind]SubCompiler
}

func (self *compiler) Compile(ctx context.Context, req *Request) (*Response, error) {
	targets := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		targets = append(targets, target.Normalize(f))
	}
	files := make([]asl.File, 0, len(targets))
	loaded := make(map[string]bool)
	for _, t := range targets {
		in, err := self.FS.Open(ctx, t)
		if err != nil {
			if fatal := self.Reporter.Report(exc.Wrap(exc.Location{URI: t}, exc.CodeFileNotFound, err)); fatal != nil {
				return nil, MultiException(self.Reporter.Reported())
			}
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == asl.FileKindNone {
				self.Logger.DebugContext(ctx, "skipping unsupported file", "uri", inf.Path(ctx))
				continue
			}
			if loaded[inf.Path(ctx)] {
				continue
			}
			loaded[inf.Path(ctx)] = true
			files = append(files, inf)
		}
	}
	self.Logger.InfoContext(ctx, "compiling", "targets", len(targets), "files", len(files))

	results := make(chan fileResult, len(files))
	expectedResults := len(files)

	for offset, file := range files {
		go func(offset int, file asl.File) {
			module, err := self.compileFile(ctx, file)
			results <- fileResult{offset, module, err}
		}(offset, file)
	}

	ordered := make([]*Module, len(files))
	var failed error
	for x := 0; x < expectedResults; x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil && failed == nil {
				failed = result.err
			}
			ordered[result.offset] = result.module
		}
	}
	if failed != nil {
		var e exc.Exception
		if !errors.As(failed, &e) {
			return nil, failed
		}
		return nil, orderExceptions(ctx, self.Reporter.Reported(), files)
	}

	final := &Response{}
	for _, module := range ordered {
		if module != nil {
			final.Modules = append(final.Modules, module)
		}
	}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return final, orderExceptions(ctx, caught, files)
	}
	return final, nil
}

func (self *compiler) compileFile(ctx context.Context, file asl.File) (*Module, error) {
	if err := self.Semaphore.Acquire(ctx); err != nil {
		return nil, err
	}
	defer self.Semaphore.Release()
	sc := self.SubCompilers[file.Kind(ctx)]
	if sc == nil {
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "Unsupported file format")
		return nil, self.Reporter.Report(e)
	}
	return sc.CompileFile(ctx, self.Reporter, file)
}

type fileResult struct {
	offset int
	module *Module
	err    error
}

// orderExceptions sorts reports by the position of their file in the request
// and then by offset. Reports for anything that was never dispatched, such as
// a target that failed to open, come first in report order.
func orderExceptions(ctx context.Context, es []exc.Exception, files []asl.File) MultiException {
	rank := make(map[string]int, len(files))
	for offset, file := range files {
		rank[file.Path(ctx)] = offset
	}
	position := func(e exc.Exception) int {
		if r, ok := rank[e.Location().URI]; ok {
			return r
		}
		return -1
	}
	ordered := slices.Clone(es)
	slices.SortStableFunc(ordered, func(a exc.Exception, b exc.Exception) int {
		if c := cmp.Compare(position(a), position(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.Location().Offset, b.Location().Offset)
	})
	return MultiException(ordered)
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}

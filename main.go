// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/pheres-lang/pheres/internal/compiler"
	"github.com/pheres-lang/pheres/internal/config"
	"github.com/pheres-lang/pheres/internal/diag"
	"github.com/pheres-lang/pheres/internal/export"
	"github.com/pheres-lang/pheres/internal/fs"
)

const (
	exitDiagnostics = 1
	exitUsage       = 2
)

type opts struct {
	Config     string
	Roots      []string
	DumpTokens bool
	SkipTrivia bool
	DumpTree   bool
	TreeOut    string
	TreeFormat string
	Color      string
	LogLevel   string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := newFlagSet(op)
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	targets := flags.Args()
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "pheresc: no targets given")
		flags.PrintDefaults()
		return exitUsage
	}

	cfg, err := loadConfig(op, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsage
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	f, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsage
	}
	mf := make(fs.FileSystemMulti, 0, len(cfg.Roots)+1)
	for _, root := range cfg.Roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return exitUsage
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return exitUsage
		}
		mf = append(mf, rf)
	}
	mf = append(mf, f)

	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
		compiler.OptionWithLogger(logger),
		compiler.OptionWithMaxConcurrency(cfg.MaxConcurrency),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsage
	}

	out, err := c.Compile(ctx, &compiler.Request{Files: targets})
	renderer := diag.NewRenderer(os.Stderr, cfg.Color)
	if err != nil && out == nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			_ = renderer.RenderAll(me, nil)
			return exitDiagnostics
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return exitDiagnostics
	}

	sources := make(map[string]string, len(out.Modules))
	for _, m := range out.Modules {
		sources[m.URI] = m.Lexed.Source()
		if cfg.DumpTokens {
			if err := compiler.DumpTokens(ctx, os.Stdout, m, cfg.SkipTrivia); err != nil {
				logger.ErrorContext(ctx, "dumping tokens", "uri", m.URI, "error", err)
			}
		}
		if cfg.DumpTree {
			if err := compiler.DumpTree(os.Stdout, m); err != nil {
				logger.ErrorContext(ctx, "dumping tree", "uri", m.URI, "error", err)
			}
		}
	}

	if cfg.TreeOut != "" {
		if werr := writeTrees(ctx, logger, cfg, out.Modules); werr != nil {
			fmt.Fprintln(os.Stderr, werr.Error())
			return exitDiagnostics
		}
	}

	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			_ = renderer.RenderAll(me, sources)
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return exitDiagnostics
	}
	return 0
}

func newFlagSet(op *opts) *pflag.FlagSet {
	defaults := config.Default()
	flags := pflag.NewFlagSet("pheresc", pflag.ContinueOnError)
	flags.StringVar(&op.Config, "config", "", "Load settings from a YAML or TOML file.")
	flags.StringSliceVar(&op.Roots, "root", defaults.Roots, "Root search paths for sources.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream of every source.")
	flags.BoolVar(&op.SkipTrivia, "skip-trivia", false, "Leave whitespace and comments out of --dump-tokens.")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the syntax tree of every source.")
	flags.StringVar(&op.TreeOut, "tree-out", "", "Write every syntax tree under DIR.")
	flags.StringVar(&op.TreeFormat, "tree-format", defaults.TreeFormat, "Encoding used by --tree-out: json or binary.")
	flags.StringVar(&op.Color, "color", defaults.Color, "Colorize diagnostics: auto, always or never.")
	flags.StringVar(&op.LogLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn or error.")
	return flags
}

// loadConfig reads the optional config file and lets explicitly set flags
// override it.
func loadConfig(op *opts, flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if op.Config != "" {
		loaded, err := config.Load(op.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.Changed("root") {
		cfg.Roots = op.Roots
	}
	if flags.Changed("dump-tokens") {
		cfg.DumpTokens = op.DumpTokens
	}
	if flags.Changed("skip-trivia") {
		cfg.SkipTrivia = op.SkipTrivia
	}
	if flags.Changed("dump-tree") {
		cfg.DumpTree = op.DumpTree
	}
	if flags.Changed("tree-out") {
		cfg.TreeOut = op.TreeOut
	}
	if flags.Changed("tree-format") {
		cfg.TreeFormat = op.TreeFormat
	}
	if flags.Changed("color") {
		cfg.Color = op.Color
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = op.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ExpandEnv(os.LookupEnv)
	return cfg, nil
}

func writeTrees(ctx context.Context, logger *slog.Logger, cfg *config.Config, modules []*compiler.Module) error {
	out, err := fs.NewFileSystemLocal(cfg.TreeOut)
	if err != nil {
		return err
	}
	for _, m := range modules {
		b, err := export.Marshal(m.Parsed.Root, cfg.TreeFormat)
		if err != nil {
			return err
		}
		uri := m.URI + export.Extension(cfg.TreeFormat)
		if err := out.Write(ctx, uri, string(b)); err != nil {
			return err
		}
		logger.DebugContext(ctx, "wrote tree", "uri", uri, "bytes", len(b))
	}
	return nil
}

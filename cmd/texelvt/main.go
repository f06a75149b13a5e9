// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/main.go
// Summary: texelvt command - run a shell through the interpreter, or replay a recording.
// Usage: `texelvt [flags] [command [args...]]`, or `texelvt -replay session.log`.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/internal/devshell"
	"github.com/framegrace/texelvt/journal"
	"github.com/framegrace/texelvt/vt"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("texelvt", flag.ContinueOnError)

	configPath := fs.String("config", "", "Config file (.json, .yaml or .yml); default: texelvt.json in the user config dir")
	journalOn := fs.Bool("journal", false, "Record diagnostics to the sqlite journal")
	replayPath := fs.String("replay", "", "Interpret a recorded output file and print the final screen")
	cursorCount := fs.String("cursor-count", "", "Relative cursor move parameter: legacy or standard")
	verbose := fs.Bool("v", false, "Log every interpreted token")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *cursorCount != "" {
		if _, ok := vt.ParseCursorCount(*cursorCount); !ok {
			return fmt.Errorf("invalid -cursor-count %q", *cursorCount)
		}
		cfg.Set("interpreter", "cursor_count", *cursorCount)
	}
	if *verbose {
		cfg.Set("log", "verbose", true)
	}
	if *journalOn {
		cfg.Set("journal", "enabled", true)
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	// The live runner owns the terminal, so logs go to a file there.
	if *replayPath == "" {
		closeLog, err := logToFile(settings.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	diag := vt.MultiDiagnostics{vt.NewLogDiagnostics(nil, settings.Verbose)}
	if settings.JournalEnabled {
		jcfg := journal.DefaultConfig(settings.JournalPath)
		jcfg.IncludeInfo = settings.JournalIncludeInfo
		j, err := journal.OpenWithConfig(jcfg)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		diag = append(diag, j)
		log.Printf("Main: journaling diagnostics to %s", settings.JournalPath)
	}

	if *replayPath != "" {
		size := devshell.TerminalSize(int(os.Stdout.Fd()), settings.Size)
		return devshell.ReplayFile(*replayPath, os.Stdout, devshell.ReplayOptions{
			Size:        size,
			CursorCount: settings.CursorCount,
			Diagnostics: diag,
		})
	}

	command, commandArgs := settings.Shell, []string(nil)
	if rest := fs.Args(); len(rest) > 0 {
		command, commandArgs = rest[0], rest[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	log.Printf("Main: starting %s (cursor count %s)", command, settings.CursorCount)
	return devshell.Run(ctx, devshell.Options{
		Command:     command,
		Args:        commandArgs,
		Term:        settings.Term,
		CursorCount: settings.CursorCount,
		Diagnostics: diag,
	})
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	if err := config.Err(); err != nil {
		log.Printf("Main: using defaults, system config failed to load: %v", err)
	}
	return config.Clone(config.System()), nil
}

func logToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	prev := log.Writer()
	log.SetOutput(file)
	return func() {
		log.SetOutput(prev)
		file.Close()
	}, nil
}

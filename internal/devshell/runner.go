// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Live runner - a child process on a pty, interpreted and drawn with tcell.
// Usage: Called by cmd/texelvt when no -replay file is given.
// Notes: Ctrl-Q quits; every other key is forwarded to the child.

package devshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

// Terminal is the session the live runner drives.
type Terminal interface {
	vt.Session
	io.Reader
	Grid() *screen.Grid
	Wait() error
	Close() error
}

// Options configures Run.
type Options struct {
	Command     string
	Args        []string
	Term        string
	CursorCount vt.CursorCount
	Diagnostics vt.Diagnostics
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

func startPTY(opts session.Options) (Terminal, error) {
	return session.Start(opts)
}

var terminalFactory = startPTY

// SetTerminalFactory overrides how Run starts the child session. Passing nil
// restores the pty-backed default.
func SetTerminalFactory(factory func(session.Options) (Terminal, error)) {
	if factory == nil {
		terminalFactory = startPTY
		return
	}
	terminalFactory = factory
}

// childExited is posted as interrupt data when the child output ends.
type childExited struct{}

// readChunk bounds a single read from the child.
const readChunk = 32 * 1024

// Run starts opts.Command sized to the screen and interprets its output
// until the child exits, the user presses Ctrl-Q, or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	scr, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer scr.Fini()
	scr.Clear()

	width, height := scr.Size()
	term, err := terminalFactory(session.Options{
		Command: opts.Command,
		Args:    opts.Args,
		Term:    opts.Term,
		Size:    vt.Dimensions{Columns: width, Rows: height},
	})
	if err != nil {
		return err
	}
	defer term.Close()

	var mu sync.Mutex
	interp := vt.New(term,
		vt.WithDiagnostics(opts.Diagnostics),
		vt.WithCursorCount(opts.CursorCount),
	)
	view := screen.NewView(scr)

	draw := func() {
		mu.Lock()
		defer mu.Unlock()
		view.Draw(term.Grid())
	}
	draw()

	g, ctx := errgroup.WithContext(ctx)
	loopDone := make(chan struct{})

	// Child output pump.
	g.Go(func() error {
		buf := make([]byte, readChunk)
		for {
			n, err := term.Read(buf)
			if n > 0 {
				mu.Lock()
				interp.Write(buf[:n])
				mu.Unlock()
				scr.PostEvent(tcell.NewEventInterrupt(nil))
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("Devshell: read from child ended: %v", err)
				}
				scr.PostEvent(tcell.NewEventInterrupt(childExited{}))
				return nil
			}
		}
	})

	// Child wait.
	g.Go(func() error {
		if err := term.Wait(); err != nil {
			log.Printf("Devshell: %s exited: %v", opts.Command, err)
		}
		scr.PostEvent(tcell.NewEventInterrupt(childExited{}))
		return nil
	})

	// Cancellation from the caller.
	g.Go(func() error {
		select {
		case <-ctx.Done():
			scr.PostEvent(tcell.NewEventInterrupt(childExited{}))
		case <-loopDone:
		}
		return nil
	})

	// Event loop.
	g.Go(func() error {
		defer close(loopDone)
		defer term.Close()
		for {
			switch ev := scr.PollEvent().(type) {
			case nil:
				return nil
			case *tcell.EventInterrupt:
				if _, ok := ev.Data().(childExited); ok {
					return nil
				}
				draw()
			case *tcell.EventResize:
				w, h := ev.Size()
				mu.Lock()
				err := term.SetDimensions(vt.Dimensions{Columns: w, Rows: h})
				mu.Unlock()
				if err != nil && !errors.Is(err, session.ErrClosed) {
					return fmt.Errorf("resize session: %w", err)
				}
				scr.Sync()
				draw()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlQ {
					return nil
				}
				if b := EncodeKey(ev); len(b) > 0 {
					if _, err := term.Write(b); err != nil && !errors.Is(err, session.ErrClosed) {
						return fmt.Errorf("write key: %w", err)
					}
				}
			}
		}
	})

	return g.Wait()
}

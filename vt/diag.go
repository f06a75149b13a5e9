// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/diag.go
// Summary: Diagnostics sink contract, categories and the log-backed sink.
// Usage: Every malformed or unsupported token is reported here; nothing is fatal.

package vt

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Category classifies a diagnostic.
type Category string

// Informational categories.
const (
	CategoryText        Category = "text"
	CategoryControl     Category = "control"
	CategoryCSI         Category = "csi"
	CategoryESC         Category = "esc"
	CategoryPrivateMode Category = "private-mode"
)

// Error categories.
const (
	MalformedPrivateMode Category = "MalformedPrivateMode"
	UnknownSGRCode       Category = "UnknownSGRCode"
	UnsupportedColorMode Category = "UnsupportedColorMode"
	InvalidColorIndex    Category = "InvalidColorIndex"
	UnknownCSI           Category = "UnknownCSI"
	UnknownESC           Category = "UnknownESC"
	UnhandledPrivateMode Category = "UnhandledPrivateMode"
	UnrecognizedOsc      Category = "UnrecognizedOsc"
	NotImplemented       Category = "NotImplemented"
	SessionFailure       Category = "SessionFailure"
)

// Diagnostics receives observations from the interpreter. Implementations
// must not panic; they never influence interpretation.
type Diagnostics interface {
	Log(c Category, details ...any)
	Error(c Category, details ...any)
}

// LogDiagnostics writes diagnostics through a standard logger. Informational
// entries are only written when Verbose is set.
type LogDiagnostics struct {
	Logger  *log.Logger
	Verbose bool
}

// NewLogDiagnostics returns a sink writing to logger, or to the standard
// logger when logger is nil.
func NewLogDiagnostics(logger *log.Logger, verbose bool) *LogDiagnostics {
	return &LogDiagnostics{Logger: logger, Verbose: verbose}
}

func (d *LogDiagnostics) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

func (d *LogDiagnostics) Log(c Category, details ...any) {
	if !d.Verbose {
		return
	}
	d.logger().Printf("VT: [%s] %s", c, FormatDetails(details...))
}

func (d *LogDiagnostics) Error(c Category, details ...any) {
	d.logger().Printf("VT: ERROR [%s] %s", c, FormatDetails(details...))
}

// MultiDiagnostics fans out to several sinks.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Log(c Category, details ...any) {
	for _, d := range m {
		d.Log(c, details...)
	}
}

func (m MultiDiagnostics) Error(c Category, details ...any) {
	for _, d := range m {
		d.Error(c, details...)
	}
}

type discard struct{}

func (discard) Log(Category, ...any)   {}
func (discard) Error(Category, ...any) {}

// Discard drops every diagnostic.
var Discard Diagnostics = discard{}

// FormatDetails renders diagnostic details on one line. Strings are quoted
// so control characters stay visible.
func FormatDetails(details ...any) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		switch v := d.(type) {
		case string:
			parts = append(parts, strconv.Quote(v))
		case byte:
			parts = append(parts, strconv.QuoteRune(rune(v)))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, " ")
}

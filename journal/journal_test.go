// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/journal_test.go
// Summary: Tests for the SQLite diagnostics journal.

package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/framegrace/texelvt/vt"
)

func openTestJournal(t *testing.T, includeInfo bool) *Journal {
	t.Helper()
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "journal.db"))
	cfg.IncludeInfo = includeInfo
	j, err := OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("OpenWithConfig: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordsErrors(t *testing.T) {
	j := openTestJournal(t, false)

	j.Log(vt.CategoryCSI, "CSI H")
	j.Error(vt.UnknownCSI, "CSI 5 Z")
	j.Error(vt.UnsupportedColorMode, 38, 2, []int{255, 0, 0})
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	recs, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	if recs[0].Category != vt.UnsupportedColorMode || recs[0].Details != "38 2 [255 0 0]" || !recs[0].IsError {
		t.Errorf("newest record = %+v", recs[0])
	}
	if recs[1].Category != vt.UnknownCSI || recs[1].Details != `"CSI 5 Z"` {
		t.Errorf("oldest record = %+v", recs[1])
	}
	if recs[0].Time.IsZero() {
		t.Error("record time not set")
	}
}

func TestJournalIncludeInfo(t *testing.T) {
	j := openTestJournal(t, true)

	j.Log(vt.CategoryText, "hi")
	j.Log(vt.CategoryCSI, "CSI H")
	j.Log(vt.CategoryCSI, "CSI 2 J")
	j.Error(vt.UnknownESC, "ESC Z")
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	counts, err := j.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	want := map[vt.Category]int{vt.CategoryText: 1, vt.CategoryCSI: 2, vt.UnknownESC: 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for c, n := range want {
		if counts[c] != n {
			t.Errorf("count[%s] = %d, want %d", c, counts[c], n)
		}
	}
}

func TestJournalRecentLimit(t *testing.T) {
	j := openTestJournal(t, false)
	for i := 0; i < 5; i++ {
		j.Error(vt.UnknownSGRCode, i)
	}
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	recs, err := j.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 3 || recs[0].Details != "4" || recs[2].Details != "2" {
		t.Errorf("unexpected records %+v", recs)
	}
	if recs, _ := j.Recent(0); recs != nil {
		t.Errorf("Recent(0) = %+v", recs)
	}
}

func TestJournalPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	j.Error(vt.NotImplemented, "CSI ? 2004 h")
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	counts, err := j.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[vt.NotImplemented] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestJournalClosed(t *testing.T) {
	j := openTestJournal(t, false)
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	j.Error(vt.UnknownCSI, "after close")
	if err := j.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush after close = %v", err)
	}
	if _, err := j.Recent(1); !errors.Is(err, ErrClosed) {
		t.Errorf("Recent after close = %v", err)
	}
	if _, err := j.CountByCategory(); !errors.Is(err, ErrClosed) {
		t.Errorf("CountByCategory after close = %v", err)
	}
}

func TestJournalAsInterpreterSink(t *testing.T) {
	j := openTestJournal(t, false)
	var d vt.Diagnostics = vt.MultiDiagnostics{vt.Discard, j}
	d.Error(vt.MalformedPrivateMode, "expected 1 parameter")
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	counts, err := j.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[vt.MalformedPrivateMode] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

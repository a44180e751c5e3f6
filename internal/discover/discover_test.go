// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLocatesCompleteTriples(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	// A complete triple at top level.
	touch(t, filepath.Join(dir, "a.o"))
	touch(t, filepath.Join(dir, "a.su"))
	touch(t, filepath.Join(dir, "a.c.249r.dfinish"))

	// A complete triple in a subdirectory.
	touch(t, filepath.Join(sub, "b.o"))
	touch(t, filepath.Join(sub, "b.su"))
	touch(t, filepath.Join(sub, "b.c.249r.dfinish"))

	// An incomplete triple: missing the .su file.
	touch(t, filepath.Join(dir, "c.o"))
	touch(t, filepath.Join(dir, "c.c.249r.dfinish"))

	tus, err := Find([]string{dir})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(tus) != 2 {
		t.Fatalf("got %d TUs, want 2: %v", len(tus), tus)
	}
	if tus[0].Base() != "a" || tus[1].Base() != "b" {
		t.Errorf("got bases %q, %q, want a, b", tus[0].Base(), tus[1].Base())
	}
}

func TestFindErrorsWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	_, err := Find([]string{dir})
	if err == nil {
		t.Fatal("expected an error for an empty tree")
	}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discover walks a set of directories looking for translation
// units: triples of files sharing a base path and carrying the
// extensions .o, .su, and .c.249r.dfinish.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	objExt = ".o"
	suExt  = ".su"
	rtlExt = ".c.249r.dfinish"
)

// TU identifies a translation unit by the shared base path of its three
// artifact files (the path with none of the three extensions).
type TU string

// ObjPath, SuPath, and RTLPath are the three artifact files a TU names.
func (t TU) ObjPath() string { return string(t) + objExt }
func (t TU) SuPath() string  { return string(t) + suExt }
func (t TU) RTLPath() string { return string(t) + rtlExt }

// Base is the TU's file basename, as shown in the report.
func (t TU) Base() string { return filepath.Base(string(t)) }

func (t TU) String() string { return string(t) }

// NoTranslationUnitsError reports that no TU triple was found under any
// of the scanned directories.
type NoTranslationUnitsError struct {
	Dirs []string
}

func (e *NoTranslationUnitsError) Error() string {
	return fmt.Sprintf("no translation units found in %v", e.Dirs)
}

// Find walks each of dirs recursively and returns every translation unit
// whose three artifact files are all present, sorted for deterministic
// iteration. It is a fatal error if none are found across all inputs.
func Find(dirs []string) ([]TU, error) {
	seen := map[string]bool{}
	var out []TU
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, objExt) {
				return nil
			}
			base := strings.TrimSuffix(path, objExt)
			if seen[base] {
				return nil
			}
			if fileExists(base+suExt) && fileExists(base+rtlExt) {
				seen[base] = true
				out = append(out, TU(base))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	if len(out) == 0 {
		return nil, &NoTranslationUnitsError{Dirs: dirs}
	}
	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sudump

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	const sample = "main.c:10:1:leaf\t16\tstatic\n" +
		"main.c:20:1:caller\t24\tdynamic\n"

	entries, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []Entry{
		{Function: "leaf", Bytes: 16, Qualifier: "static"},
		{Function: "caller", Bytes: 24, Qualifier: "dynamic"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Read() = %+v, want %+v", entries, want)
	}
}

func TestReadMalformedLine(t *testing.T) {
	_, err := Read(strings.NewReader("main.c:10:1:leaf\t16\tstatic\nnot a valid line\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
	var mle *MalformedLineError
	if !errors.As(err, &mle) {
		t.Fatalf("error %v is not a *MalformedLineError", err)
	}
	if mle.Line != 2 {
		t.Errorf("Line = %d, want 2", mle.Line)
	}
}

// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const producerConsumerNet = `
net demo

pl p0 (1)
pl p1

tr t0 [1,2] p0 -> p1
`

func writeModel(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.net")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing model: %v", err)
	}
	return path
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, since the subcommands print their results
// directly rather than through an injectable io.Writer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = orig
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out)
}

func TestRunCheckVerified(t *testing.T) {
	path := writeModel(t, producerConsumerNet)
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"check", path, "E F (p1 >= 1)"})
	})
	if code != exitVerified {
		t.Errorf("expected exit code %d, got %d (stdout: %q)", exitVerified, code, out)
	}
}

func TestRunCheckUnverified(t *testing.T) {
	const net = `
net livelock
pl p (1)
tr t [1,1] p -> p
`
	path := writeModel(t, net)
	code := run([]string{"check", path, "A F (deadlock)"})
	if code != exitUnverified {
		t.Errorf("expected exit code %d, got %d", exitUnverified, code)
	}
}

func TestRunExplore(t *testing.T) {
	path := writeModel(t, producerConsumerNet)
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"explore", path})
	})
	if code != exitVerified {
		t.Errorf("expected exit code %d, got %d", exitVerified, code)
	}
	if !strings.Contains(out, "p0") {
		t.Errorf("expected the dumped graph to mention p0, got:\n%s", out)
	}
}

func TestRunExploreWritesPNML(t *testing.T) {
	path := writeModel(t, producerConsumerNet)
	pnmlPath := filepath.Join(t.TempDir(), "out.pnml")
	var code int
	captureStdout(t, func() {
		code = run([]string{"explore", path, "-pnml", pnmlPath})
	})
	if code != exitVerified {
		t.Errorf("expected exit code %d, got %d", exitVerified, code)
	}
	data, err := os.ReadFile(pnmlPath)
	if err != nil {
		t.Fatalf("expected a PNML file to be written: %v", err)
	}
	if !strings.Contains(string(data), `id="pl_p0"`) {
		t.Errorf("expected the PNML output to mention place p0, got:\n%s", data)
	}
}

func TestRunSimulate(t *testing.T) {
	path := writeModel(t, producerConsumerNet)
	code := run([]string{"simulate", path, "-n", "2", "-max-steps", "5"})
	if code != exitVerified {
		t.Errorf("expected exit code %d, got %d", exitVerified, code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"bogus"}); code != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, code)
	}
}

func TestRunCheckBadModel(t *testing.T) {
	if code := run([]string{"check", filepath.Join(t.TempDir(), "missing.net"), "E F (p0 >= 1)"}); code != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, code)
	}
}

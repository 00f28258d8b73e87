package vlog

import (
	"strings"
	"testing"
)

func TestPrefixesAndOutputRedirection(t *testing.T) {
	var buf strings.Builder
	l := &Logger{}
	l.SetOutput(&buf)

	l.Info("starting")
	l.Pending("working")
	l.Positive("done")
	l.Negative("not found")
	l.Warning("careful")
	l.Error("broken")
	l.ContinueInfo("detail")
	l.Blank()

	out := buf.String()
	for _, want := range []string{
		"[.] starting", "[*] working", "[+] done", "[-] not found",
		"[!] careful", "[X] broken", " | - detail",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Count(out, "\n") != 8 {
		t.Errorf("expected 7 prefixed lines plus one blank line, got %d newlines", strings.Count(out, "\n"))
	}
}

func TestDefaultLoggerPackageFunctions(t *testing.T) {
	var buf strings.Builder
	Default.SetOutput(&buf)
	defer Default.SetOutput(nil)

	Info("hello")
	if !strings.Contains(buf.String(), "[.] hello") {
		t.Errorf("expected package-level Info to write through Default, got %q", buf.String())
	}
}

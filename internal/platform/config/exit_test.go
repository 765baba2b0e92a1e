package config

import (
	"bytes"
	"testing"
)

func TestExitfPrintsAndExitsWithStatusOne(t *testing.T) {
	var (
		buf    bytes.Buffer
		status = -1
	)
	origExit, origStderr := exit, stderr
	exit = func(code int) { status = code }
	stderr = &buf
	t.Cleanup(func() { exit, stderr = origExit, origStderr })

	Exitf("psgc: %s", "upstream unavailable")

	if status != 1 {
		t.Fatalf("expected exit status 1, got %d", status)
	}
	if got := buf.String(); got != "psgc: upstream unavailable\n" {
		t.Fatalf("unexpected stderr %q", got)
	}
}

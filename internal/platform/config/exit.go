package config

import (
	"fmt"
	"io"
	"os"
)

// exit and stderr are replaced in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Exitf prints a formatted message on stderr and terminates the process
// with status 1. Commands call it only after their deferred cleanup ran.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}

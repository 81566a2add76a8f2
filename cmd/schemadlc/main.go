// Command schemadlc is the thin CLI front end over the compilation
// pipeline (§6): argument parsing, file IO, directory creation, and
// diagnostic reporting live here, outside the pure core packages.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if err != errExitSilently {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// mustSync flushes a zap logger's buffered output, swallowing the
// harmless "sync /dev/stderr: invalid argument" seen on some platforms
// when stderr is a terminal.
func mustSync(log *zap.Logger) {
	_ = log.Sync()
}

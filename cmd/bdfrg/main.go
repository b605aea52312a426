package main

import (
	"fmt"
	"os"
	"runtime"
)

// Version information, set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bdfrg:", err)
		os.Exit(1)
	}
}

func versionString() string {
	return fmt.Sprintf("bdfrg %s (%s, %s)", version, commit[:min(7, len(commit))], runtime.Version())
}

package main

import (
	"fmt"
	"os"

	"github.com/resonanceenergy/ncc/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nccctl: %v\n", err)
		os.Exit(1)
	}
}

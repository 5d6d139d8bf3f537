package main

import (
	"fmt"
	"os"

	"github.com/headerguard/headerguard/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		// the scan report already explains violations; only unexpected
		// failures need an extra line
		if !errors.IsErrorCode(err, errors.ErrViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(errors.ExitCode(err))
	}
}

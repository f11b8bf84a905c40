package main

import (
	"os"

	"github.com/meridian-data/snowkit/cmd"
	"github.com/meridian-data/snowkit/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}

package main

import (
	"os"

	"github.com/clip-organization/clip-toolkit/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the marketsync daemon.
package main

import (
	"os"

	"github.com/commercekit/marketsync/cmd/marketsyncd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

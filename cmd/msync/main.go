// Package main is the entry point for the msync CLI.
package main

import (
	"github.com/commercekit/marketsync/cmd/msync/cmd"
)

func main() {
	cmd.Execute()
}

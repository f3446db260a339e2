// Package main is the entry point for the fintrack CLI and server.
package main

import (
	"os"

	"fintrack/cmd/fintrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

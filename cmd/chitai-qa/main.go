// Package main is the entry point for the chitai-qa CLI.
package main

import (
	"os"

	"github.com/donaldgifford/chitai-gorod-qa/cmd/chitai-qa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

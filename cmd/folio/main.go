package main

import (
	"os"

	"github.com/domainfolio/backend/cmd/folio/commands"
)

// main is the entry point for the domainfolio CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/rollbook-dev/rollbook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/invoicery-dev/invoicery/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/tradescout/tradescout/cmd/tradescout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/erraggy/rpcdoc/cmd/rpcdoc/commands"
)

func main() {
	if err := commands.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/fatih/color"

	"github.com/omegaatt36/batchren/app"
)

func main() {
	cmd := app.NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

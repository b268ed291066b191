package main

import (
	"os"

	"github.com/frog-cafe/frogcafe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

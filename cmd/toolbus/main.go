package main

import (
	"os"

	"github.com/toolbus/toolbus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

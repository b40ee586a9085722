package main

import (
	"os"

	"github.com/nhle/todo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

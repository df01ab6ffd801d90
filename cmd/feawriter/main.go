package main

import (
	"os"

	"github.com/adobe-type-tools/feawriter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

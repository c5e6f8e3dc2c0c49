package main

import (
	"os"

	"github.com/KayraNafi/TouchGrass/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"oli3d-catalog/cmd/catalogctl/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

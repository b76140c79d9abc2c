package main

import (
	"os"

	"github.com/reasonpy/reasonpy/cmd/reasonpy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

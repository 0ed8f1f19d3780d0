package main

import (
	"os"

	"github.com/edusense/edusense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

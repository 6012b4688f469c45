package main

import (
	"os"

	"github.com/promptslim/promptslim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

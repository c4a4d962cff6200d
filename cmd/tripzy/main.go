package main

import (
	"os"

	"github.com/mmynk/tripzy/cmd/tripzy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

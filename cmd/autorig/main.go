package main

import (
	"os"

	"autorig/cmd/autorig/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

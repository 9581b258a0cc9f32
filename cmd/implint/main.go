package main

import (
	"os"

	"github.com/implint/implint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

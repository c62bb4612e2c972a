package main

import (
	"os"

	"github.com/msto63/chainlib/cmd/chainsh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

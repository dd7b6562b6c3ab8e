package main

import (
	"os"

	"github.com/msto63/cmdline/cmd/cmdline/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

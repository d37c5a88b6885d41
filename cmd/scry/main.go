package main

import (
	"os"

	"github.com/scry-dev/scry/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

package main

import (
	"os"

	"github.com/dshills/autoreview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

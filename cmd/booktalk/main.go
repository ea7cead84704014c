// Command booktalk is the Booktalk terminal chat application.
package main

import (
	"os"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// seedmock CLI - deterministic mock data from API descriptions
package main

import (
	"os"

	"github.com/getmockd/seedmock/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = Version, Commit, BuildDate
	os.Exit(cli.Main())
}

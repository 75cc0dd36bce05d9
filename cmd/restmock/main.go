// restmock serves mock responses for OpenAPI 3 documents.
package main

import "github.com/getmockd/restmock/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildDate = BuildDate
	if Commit != "unknown" {
		cli.Commit = Commit
	}
	cli.Execute()
}

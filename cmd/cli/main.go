// Spikelog - Log Event Analysis Tool
//
// Spikelog is a batch log analysis tool that surfaces error spikes and
// recurring error patterns in plain log files.
package main

import (
	"os"

	"github.com/spikelog/spikelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

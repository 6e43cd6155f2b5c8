// Command qrscan decodes QR codes in image files.
package main

import (
	"os"

	"github.com/ericlevine/qrdecode/cmd/qrscan/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(cmd.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		os.Exit(1)
	}
}

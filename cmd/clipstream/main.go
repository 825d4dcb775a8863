package main

import (
	"github.com/pasteworks/clipstream/internal/cli"
)

var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

func main() {
	cli.SetVersionInfo(version, buildTime, commit)
	cli.Execute()
}

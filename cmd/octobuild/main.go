package main

import (
	octocmd "github.com/tanium/octobot/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	octocmd.SetVersionInfo(version, commit)
	octocmd.Execute()
}

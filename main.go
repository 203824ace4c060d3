package main

import (
	"github.com/steffen-heil-secforge/ms-365-mcp-server/cmd"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}

package main

import "github.com/gemini-mcp/gemini-mcp/pkg/cli"

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	cli.Execute(version)
}

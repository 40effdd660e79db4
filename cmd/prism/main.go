package main

import (
	"os"

	"github.com/4tenlab/prism-insight/cmd/prism/commands"
)

// main is the entry point for the Prism Insight CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/prism [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

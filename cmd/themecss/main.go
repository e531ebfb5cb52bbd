// Command themecss resolves theme references in CSS files.
package main

import (
	"os"

	"github.com/opencode-ai/themecss/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

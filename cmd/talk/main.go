// Command talk manages reusable text templates with {{name}} placeholders.
package main

import (
	"os"

	"github.com/opencode-ai/talk/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Command goslox is the CLI entry point for the Language's interpreter.
package main

import (
	"os"

	"github.com/yuhlearn/goslox/cmd/goslox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

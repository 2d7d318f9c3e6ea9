// poznote-cli turns piped or clipboard text into notes on a remote
// Poznote instance.
package main

import (
	"fmt"
	"os"

	"github.com/poznote/poznote-cli/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

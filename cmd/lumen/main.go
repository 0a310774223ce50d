// Command lumen is a thin embedding-demo driver over the interpreter
// core: it exercises the lexer and YAML codec from the command line.
// There is no language parser in this module, so this binary has no
// `run`/`eval` subcommand — only `lex` and `yaml`, the two operations
// it can drive end-to-end without one.
package main

import (
	"fmt"
	"os"

	"github.com/lumen-lang/lumen/cmd/lumen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

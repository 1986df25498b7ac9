// Command flowc drives the symbolic expression evaluator and task splitter
// over AST fixtures on disk. The textual front end (lexer, parser, type
// checker) that would normally feed this pipeline is out of scope for this
// repository; flowc's only input format is the JSON fixture
// encoding in internal/astjson.
package main

import (
	"fmt"
	"os"

	"github.com/flowc-lang/flowc/cmd/flowc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

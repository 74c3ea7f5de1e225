// Command go_mdconv converts HTML documents to Markdown.
package main

import (
	"fmt"
	"os"

	"go_mdconv/internal/entrypoint"
)

func main() {
	code, err := entrypoint.Execute(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}

// Package main provides the CLI entrypoint for entity-binder.
//
// entity-binder resolves the persistent entity hierarchies declared in
// annotated Go packages or YAML descriptor files:
//   - hierarchies: print every hierarchy with its classes and mapped properties
//   - check: report configuration problems and fail if there are any
//   - describe: write the class descriptor of Go packages as YAML
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

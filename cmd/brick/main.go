// Package main provides the brick CLI for inspecting brick tree documents.
//
// Usage:
//
//	brick sections FILE               List sections and their bindings
//	brick resolve FILE SECTION ITEM   Resolve an index path to its brick
//	brick find FILE IDENTIFIER        List index paths for an identifier
//	brick sticky FILE --offset Y      Run one sticky footer pass
//	brick check FILE...               Validate tree documents
//	brick watch FILE                  Scroll a tree interactively
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

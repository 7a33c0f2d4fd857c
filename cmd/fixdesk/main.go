// Fixdesk is a terminal admin for a repair-service catalog.
//
// Usage:
//
//	fixdesk [command] [flags]
//
// Running without a command opens the catalog editor.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultProgramFactory).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command electosim runs election scenarios from YAML files and prints the
// resulting seat allocation.
//
// Usage:
//
//	electosim run scenario.yaml
//	electosim run --output yaml --metrics scenario.yaml
//	electosim validate scenario.yaml
//	electosim methods
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Command forcegraph lays out node-link graphs with a force simulation and draws them in the terminal
package main

import (
	"fmt"
	"os"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

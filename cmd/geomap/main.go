package main

import (
	"fmt"
	"os"

	"geomap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geomap:", err)
		os.Exit(1)
	}
}

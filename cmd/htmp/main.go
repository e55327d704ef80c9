package main

import (
	"fmt"
	"os"

	"github.com/HexmosTech/htest"
)

func main() {
	if err := htest.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

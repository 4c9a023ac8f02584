package main

import (
	"os"

	"github.com/segyhp/fincalc-engine/cmd/fincalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the amsid command line entry point.
package main

import (
	"os"

	"github.com/Scharfcsh/amsid/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}

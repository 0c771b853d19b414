package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrled/skyval/cmd/skyval/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(commands.ExitCodeError)
	}
}

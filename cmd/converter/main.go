package main

import (
	"context"
	"fmt"
	"os"

	"currency-converter/internal/apperr"
	"currency-converter/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperr.MessageOf(err))
		os.Exit(1)
	}
}

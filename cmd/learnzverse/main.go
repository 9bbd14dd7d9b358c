// Learnzverse - personal tutors in the terminal and the browser
package main

import (
	"context"
	"os"

	"github.com/ashureev/learnzverse/internal/cli"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(err.Code)
	}
}

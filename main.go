package main

import (
	"context"
	"fmt"
	"os"

	"summarizer/src/cli"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

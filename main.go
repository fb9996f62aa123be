package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"ton-wallet-mcp/cmd"
)

func main() {
	// A .env file is optional; configuration can come entirely from the
	// environment or a config file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Secrets referenced from the config (e.g. ${SERPAPI_KEY}) may live in
	// a local .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

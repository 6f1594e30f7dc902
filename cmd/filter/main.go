package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Optionally load environment variables from a .env file.
	_ = godotenv.Load()

	rootCmd := cmdRoot()
	rootCmd.AddCommand(cmdSchema())

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

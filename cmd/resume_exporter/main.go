// Package main provides the entry point for the resume exporter CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_exporter",
	Short: "Resume export engine",
	Long:  "Resume exporter re-lays out parsed resume records into branded two-column PDF and DOCX documents, individually or as batch ZIP archives, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

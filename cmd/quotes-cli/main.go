package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "quotes-cli",
	Short:   "Semantic retrieval and quote extraction over a philosophy corpus",
	Version: Version,
}

func main() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

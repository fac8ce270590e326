package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage engine configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default global configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GlobalConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("version:   %s\n", cfg.Version)
		fmt.Printf("embedding: %s (%s)\n", cfg.Embedding.Provider, cfg.Embedding.Model)
		fmt.Printf("corpus:    %s\n", cfg.Corpus.DBPath)
		fmt.Printf("retrieval: top_k=%d own_pool=%s\n", cfg.Retrieval.TopK, cfg.Retrieval.OwnPool)
		fmt.Printf("quotes:    min_length=%d max_quotes=%d\n", cfg.Quotes.MinLength, cfg.Quotes.MaxQuotes)
		fmt.Printf("web:       %s\n", cfg.Web.Addr)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

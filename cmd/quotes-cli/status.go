package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus contents and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		fmt.Println("Corpus Status")
		fmt.Println("=============")
		fmt.Printf("Database:  %s\n", eng.cfg.Corpus.DBPath)
		fmt.Printf("Embedding: %s (%s)\n", eng.cfg.Embedding.Provider, eng.cfg.Embedding.Model)
		fmt.Printf("Own pool:  %s\n", eng.cfg.Retrieval.OwnPool)
		fmt.Printf("Chunks:    %d\n\n", eng.store.Count())

		for _, p := range eng.store.Stats() {
			fmt.Printf("  pool %-12s %5d chunks, %d authors, %d works\n", p.PoolID, p.Chunks, p.Authors, p.Works)
		}
		return nil
	},
}

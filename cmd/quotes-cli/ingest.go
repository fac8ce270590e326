package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/chunking"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
)

var (
	ingestAuthor string
	ingestWork   string
	ingestPool   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a text file or directory into the corpus",
	Long: `Ingest plain-text works into the corpus. Text is split into
paragraph-aligned chunks, embedded, and stored under the given author
and pool. When path is a directory every .txt file in it is ingested,
with the work name taken from the file name.

Examples:
  quotes-cli ingest tractatus.txt --author wittgenstein --work "Tractatus" --pool common
  quotes-cli ingest ./kuczynski/ --author kuczynski --pool kuczynski`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestAuthor, "author", "a", "", "author of the work (required)")
	ingestCmd.Flags().StringVarP(&ingestWork, "work", "w", "", "work title (defaults to file name)")
	ingestCmd.Flags().StringVarP(&ingestPool, "pool", "p", core.SharedPoolID, "pool to store chunks in")
	ingestCmd.MarkFlagRequired("author")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !info.IsDir() {
		return ingestFile(ctx, eng, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		if err := ingestFile(ctx, eng, filepath.Join(path, entry.Name())); err != nil {
			log.Printf("Warning: skipping %s: %v", entry.Name(), err)
			continue
		}
		ingested++
	}
	if ingested == 0 {
		return fmt.Errorf("no .txt files ingested from %s", path)
	}
	return nil
}

func ingestFile(ctx context.Context, eng *engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	work := ingestWork
	if work == "" {
		work = strings.TrimSuffix(filepath.Base(path), ".txt")
	}

	chunks := chunking.SplitProse(string(data))
	if len(chunks) == 0 {
		return fmt.Errorf("no text to ingest")
	}

	embeddings, err := eng.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed %s: %w", work, err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed %s: expected %d embeddings, got %d", work, len(chunks), len(embeddings))
	}

	for i, content := range chunks {
		err := eng.store.Insert(ctx, core.Chunk{
			Author:     ingestAuthor,
			Work:       work,
			Content:    content,
			ChunkIndex: i,
			PoolID:     ingestPool,
			Embedding:  embeddings[i],
		})
		if err != nil {
			return fmt.Errorf("store chunk %d of %s: %w", i, work, err)
		}
	}

	fmt.Printf("Ingested %s: %d chunks (author: %s, pool: %s)\n", work, len(chunks), ingestAuthor, ingestPool)
	return nil
}

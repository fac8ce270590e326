package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
)

var (
	searchTopK   int
	searchAuthor string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus for passages",
	Long: `Search the corpus for passages relevant to a query.

Results blend the primary author's pool with the common pool. Use
--author to restrict results to a single author; restricted searches
never backfill from other authors.

Examples:
  quotes-cli search "personal identity over time"
  quotes-cli search "causation" --author hume --top-k 5
  quotes-cli search "meaning of a proposition" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum results (default 10)")
	searchCmd.Flags().StringVarP(&searchAuthor, "author", "a", "", "restrict results to a single author")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	topK := searchTopK
	if topK == 0 {
		topK = eng.cfg.Retrieval.TopK
	}

	ctx := context.Background()
	results, err := eng.coordinator.Retrieve(ctx, core.RetrieveRequest{
		Query:        query,
		TopK:         topK,
		OwnPoolID:    eng.cfg.Retrieval.OwnPool,
		AuthorFilter: searchAuthor,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(query, results)
	}
	return outputSearchHuman(query, results)
}

func outputSearchJSON(query string, results []core.ScoredChunk) error {
	output := struct {
		Query   string             `json:"query"`
		Count   int                `json:"count"`
		Results []core.ScoredChunk `json:"results"`
	}{
		Query:   query,
		Count:   len(results),
		Results: results,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func outputSearchHuman(query string, results []core.ScoredChunk) error {
	if len(results) == 0 {
		fmt.Printf("No results for \"%s\"\n", query)
		return nil
	}

	fmt.Printf("Results for \"%s\" (%d results)\n\n", query, len(results))

	for i, r := range results {
		fmt.Printf("%d. [%s] %s, %s  (distance: %.4f)\n", i+1, r.Pool, r.Author, r.Work, r.Distance)

		// Content preview (first 200 chars)
		preview := r.Content
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		preview = strings.ReplaceAll(preview, "\n", " ")
		fmt.Printf("   %s\n", preview)
		fmt.Printf("   chunk %d, ~%d tokens\n\n", r.ChunkIndex, r.TokenEstimate)
	}

	return nil
}

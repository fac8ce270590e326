package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/quotes"
)

var (
	quotesTopK   int
	quotesAuthor string
	quotesMax    int
	quotesMinLen int
	quotesJSON   bool
)

var quotesCmd = &cobra.Command{
	Use:   "quotes [query]",
	Short: "Extract verbatim quotes about a topic",
	Long: `Retrieve passages relevant to a query and extract complete,
citation-clean sentences from them. Quotes are verbatim: every quote is
a literal substring of a corpus passage after orthographic correction.

Finding no acceptable quote is a normal outcome, not an error.

Examples:
  quotes-cli quotes "the nature of propositional knowledge"
  quotes-cli quotes "free will" --author kuczynski --max 3`,
	Args: cobra.ExactArgs(1),
	RunE: runQuotes,
}

func init() {
	quotesCmd.Flags().IntVarP(&quotesTopK, "top-k", "k", 0, "passages to retrieve (default 10)")
	quotesCmd.Flags().StringVarP(&quotesAuthor, "author", "a", "", "restrict quotes to a single author")
	quotesCmd.Flags().IntVarP(&quotesMax, "max", "m", 0, "maximum quotes (default 5)")
	quotesCmd.Flags().IntVar(&quotesMinLen, "min-length", 0, "minimum quote length in characters (default 40)")
	quotesCmd.Flags().BoolVar(&quotesJSON, "json", false, "output as JSON")
}

func runQuotes(cmd *cobra.Command, args []string) error {
	query := args[0]

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	topK := quotesTopK
	if topK == 0 {
		topK = eng.cfg.Retrieval.TopK
	}

	ctx := context.Background()
	results, err := eng.coordinator.Retrieve(ctx, core.RetrieveRequest{
		Query:        query,
		TopK:         topK,
		OwnPoolID:    eng.cfg.Retrieval.OwnPool,
		AuthorFilter: quotesAuthor,
	})
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	passages := make([]quotes.Passage, len(results))
	for i, r := range results {
		passages[i] = quotes.Passage{
			Work:       r.Work,
			ChunkIndex: r.ChunkIndex,
			Content:    r.Content,
		}
	}

	minLength := quotesMinLen
	if minLength == 0 {
		minLength = eng.cfg.Quotes.MinLength
	}
	maxQuotes := quotesMax
	if maxQuotes == 0 {
		maxQuotes = eng.cfg.Quotes.MaxQuotes
	}
	extracted := quotes.Extract(passages, query, minLength, maxQuotes)

	if quotesJSON {
		return outputQuotesJSON(query, extracted)
	}
	return outputQuotesHuman(query, extracted)
}

func outputQuotesJSON(query string, extracted []quotes.Quote) error {
	output := struct {
		Query  string         `json:"query"`
		Count  int            `json:"count"`
		Quotes []quotes.Quote `json:"quotes"`
	}{
		Query:  query,
		Count:  len(extracted),
		Quotes: extracted,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func outputQuotesHuman(query string, extracted []quotes.Quote) error {
	if len(extracted) == 0 {
		fmt.Printf("No quotable sentences found for \"%s\"\n", query)
		return nil
	}

	fmt.Printf("Quotes for \"%s\" (%d found)\n\n", query, len(extracted))

	for i, q := range extracted {
		fmt.Printf("%d. \"%s\"\n", i+1, q.Text)
		fmt.Printf("   %s, chunk %d  (score: %.0f)\n\n", q.SourceWork, q.ChunkIndex, q.Score)
	}

	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/authors"
)

var authorJSON bool

var authorCmd = &cobra.Command{
	Use:     "authors",
	Aliases: []string{"author"},
	Short:   "Resolve and detect author names",
}

var authorNormalizeCmd = &cobra.Command{
	Use:   "normalize [name]",
	Short: "Map an author reference to its canonical corpus name",
	Long: `Map an author reference to its canonical corpus name.

Matching is case- and diacritic-insensitive and understands common
variants ("john-michael kuczynski", "J.-M. Kuczynski"). Unknown names
fall back to their capitalized surname.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		canonical := authors.Normalize(args[0])
		if authorJSON {
			data, err := json.Marshal(map[string]string{"input": args[0], "canonical": canonical})
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(canonical)
		return nil
	},
}

var authorDetectCmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Detect which corpus author a piece of text refers to",
	Long: `Scan free text for author references and report the first one the
corpus can actually serve. Prints nothing when no author is detected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		author, err := eng.resolver.DetectFromText(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}

		if authorJSON {
			data, err := json.Marshal(map[string]interface{}{
				"author":   author,
				"detected": author != "",
			})
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		if author != "" {
			fmt.Println(author)
		}
		return nil
	},
}

func init() {
	authorCmd.PersistentFlags().BoolVar(&authorJSON, "json", false, "output as JSON")
	authorCmd.AddCommand(authorNormalizeCmd)
	authorCmd.AddCommand(authorDetectCmd)
}

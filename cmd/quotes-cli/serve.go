package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/mcp"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/web"
)

var (
	serveMCP  bool
	serveWeb  bool
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over MCP (stdio) or HTTP",
	Long: `Serve the engine. --mcp speaks the Model Context Protocol on
stdio for agent runtimes; --web starts the JSON API.

Examples:
  quotes-cli serve --mcp
  quotes-cli serve --web --addr :8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "serve MCP on stdio")
	serveCmd.Flags().BoolVar(&serveWeb, "web", false, "serve the HTTP JSON API")
	serveCmd.Flags().String("addr", "", "HTTP listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveMCP == serveWeb {
		return fmt.Errorf("specify exactly one of --mcp or --web")
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	if serveMCP {
		tools := mcp.NewToolHandler(
			eng.coordinator,
			eng.resolver,
			eng.cfg.Retrieval.OwnPool,
			eng.cfg.Quotes.MinLength,
			eng.cfg.Quotes.MaxQuotes,
		)
		return mcp.NewServer(tools).Run(context.Background())
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = eng.cfg.Web.Addr
	}
	server := web.NewServer(eng.coordinator, eng.resolver, eng.store, web.Options{
		OwnPool:   eng.cfg.Retrieval.OwnPool,
		MinLength: eng.cfg.Quotes.MinLength,
		MaxQuotes: eng.cfg.Quotes.MaxQuotes,
	})
	return server.Run(addr)
}

package mcp

import (
	"context"
	"fmt"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/quotes"
)

// Retriever runs semantic retrieval over the corpus.
type Retriever interface {
	Retrieve(ctx context.Context, req core.RetrieveRequest) ([]core.ScoredChunk, error)
}

// AuthorDetector finds corpus authors referenced in free text.
type AuthorDetector interface {
	DetectFromText(ctx context.Context, text string) (string, error)
}

// ToolHandler handles MCP tool calls.
type ToolHandler struct {
	retriever Retriever
	detector  AuthorDetector
	ownPool   string
	minLength int
	maxQuotes int
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(retriever Retriever, detector AuthorDetector, ownPool string, minLength, maxQuotes int) *ToolHandler {
	return &ToolHandler{
		retriever: retriever,
		detector:  detector,
		ownPool:   ownPool,
		minLength: minLength,
		maxQuotes: maxQuotes,
	}
}

// Handle dispatches a tool call to the appropriate handler.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case "corpus_search":
		return h.handleSearch(ctx, args)
	case "extract_quotes":
		return h.handleQuotes(ctx, args)
	case "detect_author":
		return h.handleDetectAuthor(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

const maxQuerySize = 10 << 10 // 10KB

func (h *ToolHandler) retrieve(ctx context.Context, args map[string]interface{}) (string, []core.ScoredChunk, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", nil, fmt.Errorf("query is required")
	}
	if len(query) > maxQuerySize {
		return "", nil, fmt.Errorf("query exceeds maximum size of 10KB")
	}

	topK := 0
	if k, ok := args["top_k"].(float64); ok {
		topK = int(k)
	}
	author, _ := args["author"].(string)

	results, err := h.retriever.Retrieve(ctx, core.RetrieveRequest{
		Query:        query,
		TopK:         topK,
		OwnPoolID:    h.ownPool,
		AuthorFilter: author,
	})
	if err != nil {
		return "", nil, err
	}
	return query, results, nil
}

func (h *ToolHandler) handleSearch(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	_, results, err := h.retrieve(ctx, args)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"results": results,
		"count":   len(results),
	}, nil
}

func (h *ToolHandler) handleQuotes(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, results, err := h.retrieve(ctx, args)
	if err != nil {
		return nil, err
	}

	passages := make([]quotes.Passage, len(results))
	for i, r := range results {
		passages[i] = quotes.Passage{
			Work:       r.Work,
			ChunkIndex: r.ChunkIndex,
			Content:    r.Content,
		}
	}
	extracted := quotes.Extract(passages, query, h.minLength, h.maxQuotes)

	return map[string]interface{}{
		"quotes": extracted,
		"count":  len(extracted),
	}, nil
}

func (h *ToolHandler) handleDetectAuthor(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	text, _ := args["text"].(string)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	author, err := h.detector.DetectFromText(ctx, text)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"author":   author,
		"detected": author != "",
	}, nil
}

// getToolDefinitions returns the MCP tool definitions.
func getToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "corpus_search",
			Description: "Semantic search over the philosophy corpus, blending the primary author's pool with the common pool",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Search query",
					},
					"top_k": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum results (default 10)",
					},
					"author": map[string]interface{}{
						"type":        "string",
						"description": "Restrict results to a single author (no backfill from others)",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "extract_quotes",
			Description: "Retrieve passages for a query and extract verbatim, citation-clean quotes from them",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Topic to find quotes about",
					},
					"top_k": map[string]interface{}{
						"type":        "integer",
						"description": "Passages to retrieve before extraction (default 10)",
					},
					"author": map[string]interface{}{
						"type":        "string",
						"description": "Restrict quotes to a single author",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "detect_author",
			Description: "Detect which corpus author a piece of text refers to",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Free text possibly naming an author",
					},
				},
				"required": []string{"text"},
			},
		},
	}
}

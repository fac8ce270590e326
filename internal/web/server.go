// Package web serves the engine's JSON API.
package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/corpus"
)

// Retriever runs semantic retrieval over the corpus.
type Retriever interface {
	Retrieve(ctx context.Context, req core.RetrieveRequest) ([]core.ScoredChunk, error)
}

// AuthorDetector finds corpus authors referenced in free text.
type AuthorDetector interface {
	DetectFromText(ctx context.Context, text string) (string, error)
}

// StatsProvider reports corpus contents.
type StatsProvider interface {
	Stats() []corpus.PoolStats
	Count() int
}

// Server is the HTTP API server.
type Server struct {
	retriever Retriever
	detector  AuthorDetector
	stats     StatsProvider
	router    *gin.Engine

	ownPool   string
	minLength int
	maxQuotes int
}

// Options configure the server beyond its dependencies.
type Options struct {
	OwnPool   string
	MinLength int
	MaxQuotes int
}

// NewServer creates the API server and registers its routes.
func NewServer(retriever Retriever, detector AuthorDetector, stats StatsProvider, opts Options) *Server {
	router := gin.Default()

	s := &Server{
		retriever: retriever,
		detector:  detector,
		stats:     stats,
		router:    router,
		ownPool:   opts.OwnPool,
		minLength: opts.MinLength,
		maxQuotes: opts.MaxQuotes,
	}

	api := router.Group("/api")
	{
		api.GET("/search", s.handleSearch)
		api.GET("/quotes", s.handleQuotes)
		api.GET("/authors/detect", s.handleDetectAuthor)
		api.GET("/status", s.handleStatus)
	}

	return s
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

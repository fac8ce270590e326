package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/core"
	"github.com/johnmichaelkuczynski/ANALYTICPHILOSOPHY.NET/internal/quotes"
)

const maxQuerySize = 10 << 10 // 10KB

func (s *Server) handleSearch(c *gin.Context) {
	req, ok := s.retrieveRequest(c)
	if !ok {
		return
	}

	results, err := s.retriever.Retrieve(c.Request.Context(), req)
	if err != nil {
		s.retrievalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   req.Query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleQuotes(c *gin.Context) {
	req, ok := s.retrieveRequest(c)
	if !ok {
		return
	}

	results, err := s.retriever.Retrieve(c.Request.Context(), req)
	if err != nil {
		s.retrievalError(c, err)
		return
	}

	passages := make([]quotes.Passage, len(results))
	for i, r := range results {
		passages[i] = quotes.Passage{
			Work:       r.Work,
			ChunkIndex: r.ChunkIndex,
			Content:    r.Content,
		}
	}
	extracted := quotes.Extract(passages, req.Query, s.minLength, s.maxQuotes)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   req.Query,
		"quotes":  extracted,
		"count":   len(extracted),
	})
}

func (s *Server) handleDetectAuthor(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "text parameter required",
		})
		return
	}

	author, err := s.detector.DetectFromText(c.Request.Context(), text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"author":   author,
		"detected": author != "",
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chunks":  s.stats.Count(),
		"pools":   s.stats.Stats(),
	})
}

// retrieveRequest parses the shared query parameters for search and quote
// endpoints. On failure it writes the error response and returns ok=false.
func (s *Server) retrieveRequest(c *gin.Context) (core.RetrieveRequest, bool) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query parameter required",
		})
		return core.RetrieveRequest{}, false
	}
	if len(query) > maxQuerySize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query exceeds maximum size of 10KB",
		})
		return core.RetrieveRequest{}, false
	}

	topK := 0
	if v := c.Query("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "top_k must be a non-negative integer",
			})
			return core.RetrieveRequest{}, false
		}
		topK = n
	}

	return core.RetrieveRequest{
		Query:        query,
		TopK:         topK,
		OwnPoolID:    s.ownPool,
		AuthorFilter: c.Query("author"),
	}, true
}

// retrievalError maps retrieval failures to HTTP responses. Upstream
// failures surface as 503 with a stable error code so clients can
// distinguish "engine down" from "no results".
func (s *Server) retrievalError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrRetrievalUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"code":    "retrieval_unavailable",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

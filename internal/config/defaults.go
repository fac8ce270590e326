package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Embedding: EmbeddingConfig{
			Provider: "local",
			LocalURL: "http://localhost:11434/api/embed",
			Model:    "nomic-embed-text",
		},
		Corpus: CorpusConfig{
			DBPath: defaultCorpusPath(),
		},
		Retrieval: RetrievalConfig{
			TopK:    10,
			OwnPool: "kuczynski",
		},
		Quotes: QuotesConfig{
			MinLength: 40,
			MaxQuotes: 5,
		},
		Web: WebConfig{
			Addr: ":8080",
		},
	}
}

func defaultCorpusPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aphil/corpus.db"
	}
	return filepath.Join(home, ".aphil", "corpus.db")
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	content := `# Analytic Philosophy engine configuration
version: "1"

# Embedding provider: "local" (Ollama-compatible) or "openai"
# OpenAI requires the OPENAI_API_KEY env var.
embedding:
  provider: local
  local_url: http://localhost:11434/api/embed
  model: nomic-embed-text

# Corpus storage
corpus:
  db_path: ~/.aphil/corpus.db

# Retrieval
retrieval:
  top_k: 10
  own_pool: kuczynski

# Quote extraction
quotes:
  min_length: 40
  max_quotes: 5

# HTTP API server
web:
  addr: ":8080"
`
	return os.WriteFile(path, []byte(content), 0644)
}

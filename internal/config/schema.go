package config

// Config represents the full engine configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Embedding provider configuration
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`

	// Corpus storage configuration
	Corpus CorpusConfig `yaml:"corpus" mapstructure:"corpus"`

	// Retrieval configuration
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`

	// Quote extraction configuration
	Quotes QuotesConfig `yaml:"quotes" mapstructure:"quotes"`

	// Web server configuration
	Web WebConfig `yaml:"web" mapstructure:"web"`

	// Loaded from environment, never from files
	OpenAIAPIKey string `yaml:"-" mapstructure:"-"`
}

// EmbeddingConfig selects and configures the embedding provider
type EmbeddingConfig struct {
	// Provider is "openai" or "local" (Ollama-compatible)
	Provider string `yaml:"provider" mapstructure:"provider"`
	LocalURL string `yaml:"local_url" mapstructure:"local_url"`
	Model    string `yaml:"model" mapstructure:"model"`
}

// CorpusConfig configures chunk storage
type CorpusConfig struct {
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// RetrievalConfig configures the retrieval coordinator
type RetrievalConfig struct {
	TopK    int    `yaml:"top_k" mapstructure:"top_k"`
	OwnPool string `yaml:"own_pool" mapstructure:"own_pool"`
}

// QuotesConfig configures quote extraction
type QuotesConfig struct {
	MinLength int `yaml:"min_length" mapstructure:"min_length"`
	MaxQuotes int `yaml:"max_quotes" mapstructure:"max_quotes"`
}

// WebConfig configures the HTTP API server
type WebConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

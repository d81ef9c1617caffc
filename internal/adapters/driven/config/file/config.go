package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Provider names accepted in configuration. Anthropic serves answer
// generation only; it has no embedding API.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// Storage backend names accepted in configuration.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds every user-tunable setting.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Search    SearchConfig    `toml:"search"`
}

// StorageConfig selects and locates the chunk store.
type StorageConfig struct {
	// Backend is "sqlite" or "memory" (default: sqlite).
	Backend string `toml:"backend"`

	// DataDir is where the database lives (default: ~/.docquery/data).
	DataDir string `toml:"data_dir"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "gemini", "openai" or "ollama" (default: gemini).
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// APIKey is usually supplied via environment instead. Ollama needs
	// no key.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint, mainly for Ollama.
	BaseURL string `toml:"base_url"`

	// RequestSpacingMS is the minimum gap between embedding requests
	// in milliseconds (default: 2000).
	RequestSpacingMS int `toml:"request_spacing_ms"`

	// MaxTextChars truncates embedding input beyond this length
	// (default: 8000).
	MaxTextChars int `toml:"max_text_chars"`
}

// LLMConfig configures the answer generation provider.
type LLMConfig struct {
	// Provider is "gemini", "openai", "anthropic" or "ollama"
	// (default: gemini).
	Provider string `toml:"provider"`

	// Model overrides the provider's default chat model.
	Model string `toml:"model"`

	// APIKey is usually supplied via environment instead. Ollama needs
	// no key.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint, mainly for Ollama.
	BaseURL string `toml:"base_url"`
}

// ChunkingConfig sets the default chunking parameters for uploads.
type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// SearchConfig sets the default retrieval parameters.
type SearchConfig struct {
	Limit int `toml:"limit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Embedding: EmbeddingConfig{
			Provider:         ProviderGemini,
			RequestSpacingMS: 2000,
			MaxTextChars:     8000,
		},
		LLM: LLMConfig{
			Provider: ProviderGemini,
		},
		Chunking: ChunkingConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Search: SearchConfig{
			Limit: 5,
		},
	}
}

// DefaultPath returns ~/.docquery/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docquery", "config.toml"), nil
}

// Load builds the configuration: defaults, then the TOML file at path
// (or the default path when empty), then environment variables. A
// missing file is not an error. A .env file in the working directory
// is loaded first so its variables participate in the overlay.
func Load(path string) (*Config, error) {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	setString(&c.Storage.Backend, "DOCQUERY_STORAGE_BACKEND")
	setString(&c.Storage.DataDir, "DOCQUERY_DATA_DIR")
	setString(&c.Embedding.Provider, "DOCQUERY_EMBEDDING_PROVIDER")
	setString(&c.Embedding.Model, "DOCQUERY_EMBEDDING_MODEL")
	setString(&c.Embedding.BaseURL, "DOCQUERY_EMBEDDING_BASE_URL")
	setString(&c.LLM.Provider, "DOCQUERY_LLM_PROVIDER")
	setString(&c.LLM.Model, "DOCQUERY_LLM_MODEL")
	setString(&c.LLM.BaseURL, "DOCQUERY_LLM_BASE_URL")
	setInt(&c.Embedding.RequestSpacingMS, "DOCQUERY_REQUEST_SPACING_MS")
	setInt(&c.Embedding.MaxTextChars, "DOCQUERY_MAX_TEXT_CHARS")
	setInt(&c.Chunking.ChunkSize, "DOCQUERY_CHUNK_SIZE")
	setInt(&c.Chunking.ChunkOverlap, "DOCQUERY_CHUNK_OVERLAP")
	setInt(&c.Search.Limit, "DOCQUERY_SEARCH_LIMIT")

	// Provider keys come from the conventional variables.
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		if c.Embedding.Provider == ProviderGemini {
			c.Embedding.APIKey = key
		}
		if c.LLM.Provider == ProviderGemini {
			c.LLM.APIKey = key
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.Embedding.Provider == ProviderOpenAI {
			c.Embedding.APIKey = key
		}
		if c.LLM.Provider == ProviderOpenAI {
			c.LLM.APIKey = key
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		if c.LLM.Provider == ProviderAnthropic {
			c.LLM.APIKey = key
		}
	}
}

// Validate rejects values the rest of the system cannot work with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Embedding.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Embedding.Provider)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.ChunkOverlap < 0 || c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.Chunking.ChunkOverlap)
	}
	if c.Search.Limit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.Search.Limit)
	}
	return nil
}

// RequestSpacing returns the embedding request spacing as a duration.
func (c *Config) RequestSpacing() time.Duration {
	return time.Duration(c.Embedding.RequestSpacingMS) * time.Millisecond
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

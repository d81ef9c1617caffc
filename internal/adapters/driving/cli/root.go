// Package cli provides the command line interface for the document
// library. Commands are wired to the core services through a
// composition root that runs before any command needing them.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenloom/docquery/internal/adapters/driven/config/file"
	geminiembed "github.com/listenloom/docquery/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/listenloom/docquery/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/listenloom/docquery/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/listenloom/docquery/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/listenloom/docquery/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/listenloom/docquery/internal/adapters/driven/llm/ollama"
	openaillm "github.com/listenloom/docquery/internal/adapters/driven/llm/openai"
	"github.com/listenloom/docquery/internal/adapters/driven/storage/memory"
	"github.com/listenloom/docquery/internal/adapters/driven/storage/sqlite"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/core/ports/driving"
	"github.com/listenloom/docquery/internal/core/services"
	"github.com/listenloom/docquery/internal/extractors"
	"github.com/listenloom/docquery/internal/extractors/docx"
	htmlext "github.com/listenloom/docquery/internal/extractors/html"
	pdfext "github.com/listenloom/docquery/internal/extractors/pdf"
	"github.com/listenloom/docquery/internal/extractors/plaintext"
	"github.com/listenloom/docquery/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Shared services, wired in initServices. libraryService stays nil
// when no provider API key is configured; commands that need it must
// check.
var (
	cfg               *file.Config
	chunkStore        driven.ChunkStore
	extractorRegistry *extractors.Registry
	libraryService    driving.LibraryService
)

// errNoProviders is returned by commands that need the AI providers.
var errNoProviders = errors.New(
	"no provider API key configured; set GOOGLE_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY, or configure the ollama provider")

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "docquery",
	Short: "Ask questions about your documents",
	Long: `docquery ingests documents into a local library and answers
questions about them using semantic search over embedded chunks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if chunkStore != nil {
			return chunkStore.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.docquery/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the chunk store, extractors and, when an API key
// is available, the full library service.
func initServices() error {
	// Already wired, either by a previous command or by a test.
	if cfg != nil {
		return nil
	}

	var err error
	cfg, err = file.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	switch cfg.Storage.Backend {
	case file.BackendMemory:
		chunkStore = memory.NewChunkStore()
	default:
		chunkStore, err = sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
	}

	extractorRegistry = extractors.NewRegistry(
		plaintext.New(),
		htmlext.New(),
		pdfext.New(),
		docx.New(),
	)

	embedProvider, llmProvider, err := buildProviders()
	if err != nil {
		return err
	}
	if embedProvider == nil || llmProvider == nil {
		logger.Debug("Providers not configured, library operations limited to listing and deleting")
		return nil
	}

	embedder := services.NewEmbeddingClient(
		embedProvider,
		services.NewPacer(cfg.RequestSpacing()),
		services.WithMaxTextChars(cfg.Embedding.MaxTextChars),
	)
	pipeline := services.NewIngestionPipeline(extractorRegistry, embedder, chunkStore)
	retriever := services.NewRetriever(chunkStore, embedder)
	synthesizer := services.NewSynthesizer(llmProvider)
	libraryService = services.NewLibrary(pipeline, retriever, synthesizer, chunkStore)

	logger.Debug("Embedding: %s, LLM: %s, storage: %s",
		embedProvider.ModelName(), llmProvider.ModelName(), cfg.Storage.Backend)
	return nil
}

// buildProviders constructs the configured embedding and LLM
// providers. Both are nil when a required API key is missing. Ollama
// needs no key.
func buildProviders() (driven.EmbeddingProvider, driven.LLMProvider, error) {
	if needsAPIKey(cfg.Embedding.Provider) && cfg.Embedding.APIKey == "" {
		return nil, nil, nil
	}
	if needsAPIKey(cfg.LLM.Provider) && cfg.LLM.APIKey == "" {
		return nil, nil, nil
	}

	var embedProvider driven.EmbeddingProvider
	var err error
	switch cfg.Embedding.Provider {
	case file.ProviderOpenAI:
		embedProvider, err = openaiembed.NewEmbeddingProvider(openaiembed.Config{
			APIKey: cfg.Embedding.APIKey,
			Model:  cfg.Embedding.Model,
		})
	case file.ProviderOllama:
		embedProvider = ollamaembed.NewEmbeddingProvider(ollamaembed.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	default:
		embedProvider, err = geminiembed.NewEmbeddingProvider(geminiembed.Config{
			APIKey: cfg.Embedding.APIKey,
			Model:  cfg.Embedding.Model,
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("building embedding provider: %w", err)
	}

	var llmProvider driven.LLMProvider
	switch cfg.LLM.Provider {
	case file.ProviderOpenAI:
		llmProvider, err = openaillm.NewLLMProvider(openaillm.Config{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
		})
	case file.ProviderOllama:
		llmProvider = ollamallm.NewLLMProvider(ollamallm.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	case file.ProviderAnthropic:
		llmProvider, err = anthropicllm.NewLLMProvider(anthropicllm.Config{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
		})
	default:
		llmProvider, err = geminillm.NewLLMProvider(geminillm.Config{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("building llm provider: %w", err)
	}

	return embedProvider, llmProvider, nil
}

func needsAPIKey(provider string) bool {
	return provider != file.ProviderOllama
}

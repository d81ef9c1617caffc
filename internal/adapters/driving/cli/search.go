package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenloom/docquery/internal/core/domain"
)

var (
	searchLimit    int
	searchDocument string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Ask a question about the stored documents",
	Long: `Embeds the query, retrieves the most similar chunks and asks the
configured language model for an answer grounded in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of chunks to retrieve (0 = configured default)")
	searchCmd.Flags().StringVar(&searchDocument, "document", "", "restrict the search to one document ID")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNoProviders
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.Limit
	}

	answer, err := libraryService.Search(cmd.Context(), args[0], searchDocument, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, answer)
	}
	return outputSearchText(cmd, answer)
}

func outputSearchJSON(cmd *cobra.Command, answer *domain.SearchAnswer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, answer *domain.SearchAnswer) error {
	cmd.Println(answer.Answer)

	if len(answer.SourceDocuments) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, name := range answer.SourceDocuments {
			cmd.Printf("  - %s\n", name)
		}
	}

	if verbose && len(answer.RetrievedChunks) > 0 {
		cmd.Println()
		cmd.Println("Retrieved chunks:")
		for i, chunk := range answer.RetrievedChunks {
			cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, chunk.DocumentName, chunk.ChunkIndex, chunk.Score)
		}
	}

	return nil
}

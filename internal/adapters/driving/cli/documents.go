package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage the stored documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document and all its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output the list as JSON")
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

// List and delete go straight to the chunk store so they work without
// any provider API key configured.
func runDocumentsList(cmd *cobra.Command, _ []string) error {
	docs, err := chunkStore.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%s  %s (%s, %d chunks)\n",
			doc.DocumentID, doc.DocumentName, doc.DocumentType, doc.ChunkCount)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	deleted, err := chunkStore.DeleteDocument(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if deleted == 0 {
		cmd.Printf("No document found with ID %s\n", args[0])
		return nil
	}
	cmd.Printf("Deleted %d chunks\n", deleted)
	return nil
}

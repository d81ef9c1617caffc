package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	uploadChunkSize    int
	uploadChunkOverlap int
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Ingest a document into the library",
	Long: `Extracts text from the file, splits it into overlapping chunks,
embeds each chunk and stores the result. Supported formats: txt, md,
markdown, html, pdf, docx.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().IntVar(&uploadChunkSize, "chunk-size", 0, "chunk size in characters (0 = configured default)")
	uploadCmd.Flags().IntVar(&uploadChunkOverlap, "chunk-overlap", -1, "overlap between chunks in characters (-1 = configured default)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNoProviders
	}

	chunkSize := uploadChunkSize
	if chunkSize <= 0 {
		chunkSize = cfg.Chunking.ChunkSize
	}
	overlap := uploadChunkOverlap
	if overlap < 0 {
		overlap = cfg.Chunking.ChunkOverlap
	}

	receipt, err := libraryService.Upload(cmd.Context(), args[0], chunkSize, overlap)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s\n", receipt.DocumentName)
	cmd.Printf("  Document ID: %s\n", receipt.DocumentID)
	cmd.Printf("  Chunks:      %d\n", receipt.ChunksCreated)
	return nil
}

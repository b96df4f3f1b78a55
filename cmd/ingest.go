package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/triagebot/internal/config"
	"github.com/ziadkadry99/triagebot/internal/embeddings"
	"github.com/ziadkadry99/triagebot/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <taxonomy-file>",
	Short: "Build the taxonomy vector store from a CSV or JSON export",
	Long: `Reads taxonomy snippets (tag + description) from a CSV or JSON file,
embeds them and persists the vector store used by the vector-augmented
classification strategy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required for ingest")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading taxonomy file: %w", err)
		}
		snippets, err := vectordb.ParseTaxonomy(data, args[0])
		if err != nil {
			return err
		}
		if len(snippets) == 0 {
			return fmt.Errorf("no usable snippets in %s", args[0])
		}

		embedder := embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel)
		store, err := vectordb.NewChromemStore(cfg.Vector.Collection, embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		ctx := context.Background()
		bar := progressbar.Default(int64(len(snippets)), "embedding snippets")
		for _, sn := range snippets {
			if err := store.AddSnippets(ctx, []vectordb.Snippet{sn}); err != nil {
				return fmt.Errorf("adding snippet %q: %w", sn.Tag, err)
			}
			bar.Add(1)
		}

		if err := os.MkdirAll(cfg.Vector.Dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Vector.Dir, err)
		}
		if err := store.Persist(ctx, cfg.Vector.Dir); err != nil {
			return fmt.Errorf("persisting vector store: %w", err)
		}

		fmt.Printf("Ingested %d snippets into %s (collection %q)\n",
			store.Count(), cfg.Vector.Dir, cfg.Vector.Collection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

package vectordb

import (
	"context"
	"fmt"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/triagebot/internal/embeddings"
)

const storeFile = "chromem.gob.gz"

// ChromemStore implements Store using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates an in-memory store with the given collection
// name, using the embedder for both indexing and query embedding.
func NewChromemStore(name string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(name, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		name:       name,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) AddSnippets(ctx context.Context, snippets []Snippet) error {
	if len(snippets) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(snippets))
	for i, sn := range snippets {
		docs[i] = chromem.Document{
			ID:      sn.ID,
			Content: sn.Content,
			Metadata: map[string]string{
				"tag": sn.Tag,
			},
		}
	}

	return s.collection.AddDocuments(ctx, docs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 2
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := s.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Content:    r.Content,
			Tag:        r.Metadata["tag"],
			Similarity: r.Similarity,
		}
	}

	return out, nil
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, storeFile), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, storeFile), ""); err != nil {
		return fmt.Errorf("import from %s: %w", dir, err)
	}

	// Re-acquire the collection reference after import.
	col := s.db.GetCollection(s.name, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", s.name)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

package vectordb

import "context"

// Snippet is a taxonomy knowledge snippet stored for semantic retrieval.
type Snippet struct {
	ID      string
	Content string
	Tag     string // category tag the snippet belongs to, may be empty
}

// SearchResult pairs a snippet with its similarity score.
type SearchResult struct {
	Content    string
	Tag        string
	Similarity float32
}

// Store holds taxonomy snippets and retrieves the nearest ones for a query.
type Store interface {
	// AddSnippets adds or updates snippets in the store.
	AddSnippets(ctx context.Context, snippets []Snippet) error

	// Search returns the topK most similar snippets for the query text.
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)

	// Persist saves the store's data under the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the number of stored snippets.
	Count() int
}

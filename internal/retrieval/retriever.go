package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

const (
	// DefaultTopK and DefaultScoreThreshold mirror the corpus index the
	// backend was tuned against (top 5 passages, cosine similarity >= 0.7).
	DefaultTopK           = 5
	DefaultScoreThreshold = 0.7
)

var ErrEmptyQuery = errors.New("query cannot be empty")

// Passage is one retrievable unit of corpus text with a stable identifier.
type Passage struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// Retriever returns ranked passages for a query. An empty result is valid;
// the chat pipeline then generates with empty context.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Passage, error)
}

// VectorStoreRetriever adapts a langchaingo vector store into the Retriever
// contract. It never mutates the store.
type VectorStoreRetriever struct {
	store          vectorstores.VectorStore
	scoreThreshold float32
}

func NewVectorStoreRetriever(store vectorstores.VectorStore, scoreThreshold float32) *VectorStoreRetriever {
	return &VectorStoreRetriever{
		store:          store,
		scoreThreshold: scoreThreshold,
	}
}

func (r *VectorStoreRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Passage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	docs, err := r.store.SimilaritySearch(ctx, query, topK,
		vectorstores.WithScoreThreshold(r.scoreThreshold))
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	passages := make([]Passage, 0, len(docs))
	for _, doc := range docs {
		passages = append(passages, Passage{
			ID:    passageID(doc),
			Text:  doc.PageContent,
			Score: doc.Score,
		})
	}
	return passages, nil
}

// passageID prefers a stable identifier from the document metadata and falls
// back to a content hash so deduplication still works on bare documents.
func passageID(doc schema.Document) string {
	for _, key := range []string{"passage_id", "id"} {
		if v, ok := doc.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	sum := sha256.Sum256([]byte(doc.PageContent))
	return hex.EncodeToString(sum[:8])
}

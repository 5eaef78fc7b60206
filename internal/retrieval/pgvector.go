package retrieval

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/vectorstores/pgvector"
)

// NewPgVectorRetriever builds the production retriever over the corpus table
// in Postgres. The corpus itself is written by an external indexing job;
// this backend only reads from it.
func NewPgVectorRetriever(ctx context.Context) (*VectorStoreRetriever, error) {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL must be set")
	}

	opts := []openai.Option{}
	if model := os.Getenv("EMBEDDING_MODEL_NAME"); model != "" {
		opts = append(opts, openai.WithEmbeddingModel(model))
	}
	if baseURL := os.Getenv("EMBEDDING_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	collection := os.Getenv("CORPUS_COLLECTION_NAME")
	if collection == "" {
		collection = "corpus_passages"
	}

	store, err := pgvector.New(ctx,
		pgvector.WithConnectionURL(dsn),
		pgvector.WithEmbedder(embedder),
		pgvector.WithCollectionName(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("create pgvector store: %w", err)
	}

	return NewVectorStoreRetriever(store, DefaultScoreThreshold), nil
}

package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

type fakeVectorStore struct {
	docs      []schema.Document
	err       error
	lastQuery string
	lastTopK  int
}

func (s *fakeVectorStore) AddDocuments(ctx context.Context, docs []schema.Document, options ...vectorstores.Option) ([]string, error) {
	return nil, errors.New("read-only store")
}

func (s *fakeVectorStore) SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
	s.lastQuery = query
	s.lastTopK = numDocuments
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func TestRetrieveRejectsEmptyQuery(t *testing.T) {
	r := NewVectorStoreRetriever(&fakeVectorStore{}, DefaultScoreThreshold)

	_, err := r.Retrieve(context.Background(), "", DefaultTopK)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = r.Retrieve(context.Background(), "   \n", DefaultTopK)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRetrieveMapsDocumentsToPassages(t *testing.T) {
	store := &fakeVectorStore{docs: []schema.Document{
		{PageContent: "first passage", Score: 0.91, Metadata: map[string]any{"passage_id": "p-1"}},
		{PageContent: "second passage", Score: 0.84, Metadata: map[string]any{"id": "p-2"}},
	}}
	r := NewVectorStoreRetriever(store, DefaultScoreThreshold)

	passages, err := r.Retrieve(context.Background(), "what is it about", 2)
	require.NoError(t, err)

	require.Len(t, passages, 2)
	assert.Equal(t, Passage{ID: "p-1", Text: "first passage", Score: 0.91}, passages[0])
	assert.Equal(t, Passage{ID: "p-2", Text: "second passage", Score: 0.84}, passages[1])
	assert.Equal(t, "what is it about", store.lastQuery)
	assert.Equal(t, 2, store.lastTopK)
}

func TestRetrieveHashesDocumentsWithoutId(t *testing.T) {
	store := &fakeVectorStore{docs: []schema.Document{
		{PageContent: "same text"},
		{PageContent: "same text"},
		{PageContent: "other text"},
	}}
	r := NewVectorStoreRetriever(store, DefaultScoreThreshold)

	passages, err := r.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)

	require.Len(t, passages, 3)
	assert.NotEmpty(t, passages[0].ID)
	// identical content hashes to the same id so duplicates collapse later
	assert.Equal(t, passages[0].ID, passages[1].ID)
	assert.NotEqual(t, passages[0].ID, passages[2].ID)
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	store := &fakeVectorStore{}
	r := NewVectorStoreRetriever(store, DefaultScoreThreshold)

	_, err := r.Retrieve(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, store.lastTopK)
}

func TestRetrievePropagatesStoreErrors(t *testing.T) {
	store := &fakeVectorStore{err: errors.New("connection refused")}
	r := NewVectorStoreRetriever(store, DefaultScoreThreshold)

	_, err := r.Retrieve(context.Background(), "query", DefaultTopK)
	assert.Error(t, err)
}

func TestRetrieveEmptyResultIsValid(t *testing.T) {
	r := NewVectorStoreRetriever(&fakeVectorStore{}, DefaultScoreThreshold)

	passages, err := r.Retrieve(context.Background(), "query", DefaultTopK)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

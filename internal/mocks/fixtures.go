package mocks

import (
	"context"

	"github.com/emlips/nc-news/internal/seed"
)

// NewSeededStore returns a store loaded with the development dataset.
// Article 1 has 8 comments, article 2 has none, and topic "paper" has no articles.
func NewSeededStore() *Store {
	data, err := seed.Load()
	if err != nil {
		panic(err)
	}

	store := NewStore()
	if err := store.Repositories().Dataset.Replace(context.Background(), data); err != nil {
		panic(err)
	}

	store.Calls = 0
	return store
}

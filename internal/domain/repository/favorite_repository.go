package repository

import "context"

// FavoriteRepository tracks which users favorited which articles.
// Save and Remove are idempotent.
type FavoriteRepository interface {
	Save(ctx context.Context, articleID, userID string) error
	Remove(ctx context.Context, articleID, userID string) error
	IsFavorited(ctx context.Context, articleID, userID string) (bool, error)
	Count(ctx context.Context, articleID string) (int, error)
}

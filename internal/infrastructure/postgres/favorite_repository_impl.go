package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realworld-go/conduit/internal/domain/repository"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Save(ctx context.Context, articleID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO article_favorites (article_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, articleID, userID)
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, articleID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM article_favorites
		WHERE article_id = $1 AND user_id = $2
	`, articleID, userID)
	return err
}

func (r *FavoriteRepository) IsFavorited(ctx context.Context, articleID, userID string) (bool, error) {
	var favorited bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM article_favorites WHERE article_id = $1 AND user_id = $2
		)
	`, articleID, userID).Scan(&favorited)
	return favorited, err
}

func (r *FavoriteRepository) Count(ctx context.Context, articleID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM article_favorites WHERE article_id = $1
	`, articleID).Scan(&n)
	return n, err
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

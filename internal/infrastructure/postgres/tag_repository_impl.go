package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realworld-go/conduit/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// List returns tag names that are attached to at least one article.
// Names left behind by deleted articles stay in the tags table but are
// not reported here.
func (r *TagRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.name
		FROM tags t
		WHERE EXISTS (SELECT 1 FROM article_tags at WHERE at.tag_id = t.id)
		ORDER BY t.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

var _ repository.TagRepository = (*TagRepository)(nil)

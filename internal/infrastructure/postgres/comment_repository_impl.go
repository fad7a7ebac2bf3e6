package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `c.id, c.body, c.user_id, c.article_id, c.created_at`

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, body, user_id, article_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Body, c.AuthorID, c.ArticleID, c.CreatedAt)
	return err
}

// GetByID is scoped to the article so a comment can only be addressed
// through its own thread. Ids come straight from the URL, so anything
// that is not a uuid counts as absent rather than a query error.
func (r *CommentRepository) GetByID(ctx context.Context, articleID, commentID string) (*entity.Comment, error) {
	if _, err := uuid.Parse(commentID); err != nil {
		return nil, nil
	}
	return scanComment(r.pool.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.id = $1 AND c.article_id = $2
	`, commentID, articleID))
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.article_id = $1
		ORDER BY c.created_at
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.Body, &c.AuthorID, &c.ArticleID, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.Body, &c.AuthorID, &c.ArticleID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

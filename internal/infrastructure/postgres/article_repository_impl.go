package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `a.id, a.slug, a.title, a.description, a.body, a.user_id, a.created_at, a.updated_at`

// Create inserts the article row and its tag links in one transaction;
// tag names are upserted so concurrent articles can share them.
func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO articles (id, slug, title, description, body, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Slug, a.Title, a.Description, a.Body, a.AuthorID, a.CreatedAt, a.UpdatedAt); err != nil {
		return err
	}
	if err := linkTags(ctx, tx, a.ID, a.TagList); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func linkTags(ctx context.Context, tx pgx.Tx, articleID string, tags []string) error {
	for _, name := range tags {
		var tagID string
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (id, name)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uuid.NewString(), name).Scan(&tagID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO article_tags (article_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, `a.id = $1`, id)
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return r.getOne(ctx, `a.slug = $1`, slug)
}

func (r *ArticleRepository) getOne(ctx context.Context, cond string, arg any) (*entity.Article, error) {
	a, err := scanArticle(r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		WHERE `+cond, arg))
	if err != nil || a == nil {
		return nil, err
	}
	if err := r.loadTags(ctx, []*entity.Article{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Update rewrites the mutable columns only; tag links are fixed at
// creation time.
func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, updated_at = $5
		WHERE id = $6
	`, a.Slug, a.Title, a.Description, a.Body, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

// Delete removes the article; tag links, favorites and comments go with
// it through ON DELETE CASCADE.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (r *ArticleRepository) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 6)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Tag != "" {
		add(`a.id IN (SELECT at.article_id FROM article_tags at JOIN tags t ON t.id = at.tag_id WHERE t.name = $%d)`, f.Tag)
	}
	if f.Author != "" {
		add(`a.user_id IN (SELECT id FROM users WHERE username = $%d)`, f.Author)
	}
	if f.FavoritedBy != "" {
		add(`a.id IN (SELECT af.article_id FROM article_favorites af JOIN users u ON u.id = af.user_id WHERE u.username = $%d)`, f.FavoritedBy)
	}
	if f.FollowedBy != "" {
		add(`a.user_id IN (SELECT follow_id FROM follows WHERE user_id = $%d)`, f.FollowedBy)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM articles a`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		%s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, cond, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		a := &entity.Article{}
		if err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body, &a.AuthorID,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := r.loadTags(ctx, articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// loadTags fills TagList for every article in one query.
func (r *ArticleRepository) loadTags(ctx context.Context, articles []*entity.Article) error {
	if len(articles) == 0 {
		return nil
	}
	ids := make([]string, len(articles))
	byID := make(map[string]*entity.Article, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
		byID[a.ID] = a
		a.TagList = []string{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT at.article_id, t.name
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1::uuid[])
		ORDER BY t.name
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var articleID, name string
		if err := rows.Scan(&articleID, &name); err != nil {
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.TagList = append(a.TagList, name)
		}
	}
	return rows.Err()
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	a := &entity.Article{}
	if err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body, &a.AuthorID,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)

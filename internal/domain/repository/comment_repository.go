package repository

import (
	"context"

	"github.com/realworld-go/conduit/internal/domain/entity"
)

// CommentRepository defines the interface for comment persistence.
// GetByID is scoped to an article so a comment id from another thread
// cannot be addressed. Lookups return (nil, nil) when no row matches.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, articleID, commentID string) (*entity.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

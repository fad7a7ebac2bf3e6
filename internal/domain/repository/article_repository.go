package repository

import (
	"context"

	"github.com/realworld-go/conduit/internal/domain/entity"
)

// ArticleFilter narrows List results. Zero values mean "no filter";
// Author and FavoritedBy are usernames, FollowedBy is a user id.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	FollowedBy  string
	Limit       int
	Offset      int
}

// ArticleRepository defines the interface for article persistence.
// Lookups return (nil, nil) when no row matches. List also reports the
// total count ignoring Limit and Offset.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ArticleFilter) ([]*entity.Article, int, error)
}

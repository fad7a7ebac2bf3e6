package repository

import (
	"context"

	"github.com/realworld-go/conduit/internal/domain/entity"
)

// UserRepository defines the interface for user-related database
// operations. Lookups return (nil, nil) when no row matches; absence is
// not an error at this layer.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	SaveFollow(ctx context.Context, followerID, followeeID string) error
	RemoveFollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

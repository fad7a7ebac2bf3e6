package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
)

// ProfileService serves public profiles and the follow relation.
type ProfileService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewProfileService(users repository.UserRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Logger: logger}
}

// Get returns the profile of username as seen by viewerID; an empty
// viewerID means anonymous and Following stays false.
func (s *ProfileService) Get(ctx context.Context, viewerID, username string) (*Profile, error) {
	target, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, target)
}

func (s *ProfileService) Follow(ctx context.Context, viewerID, username string) (*Profile, error) {
	target, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == viewerID {
		return nil, &entity.ValidationError{Field: "username", Reason: "can't follow yourself"}
	}
	if err := s.Users.SaveFollow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, target)
}

func (s *ProfileService) Unfollow(ctx context.Context, viewerID, username string) (*Profile, error) {
	target, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.Users.RemoveFollow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, target)
}

func (s *ProfileService) lookup(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *ProfileService) view(ctx context.Context, viewerID string, target *entity.User) (*Profile, error) {
	following := false
	if viewerID != "" {
		var err error
		following, err = s.Users.IsFollowing(ctx, viewerID, target.ID)
		if err != nil {
			return nil, err
		}
	}
	p := profileOf(target, following)
	return &p, nil
}

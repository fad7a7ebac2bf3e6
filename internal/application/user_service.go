package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
	"github.com/realworld-go/conduit/pkg/helpers"
	"github.com/realworld-go/conduit/pkg/mailer"
	"github.com/realworld-go/conduit/pkg/mailer/templates"
)

// UserService owns registration, login and the current-user endpoints.
// Publisher, GCS and Logger are optional; a nil collaborator simply
// disables the side effect it powers.
type UserService struct {
	Users     repository.UserRepository
	Tokens    *helpers.TokenService
	Publisher *helpers.RabbitPublisher
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
	AppName   string
	AppURL    string
}

func NewUserService(users repository.UserRepository, tokens *helpers.TokenService, pub *helpers.RabbitPublisher, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, appName, appURL string) *UserService {
	return &UserService{
		Users:     users,
		Tokens:    tokens,
		Publisher: pub,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
		AppName:   appName,
		AppURL:    appURL,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates an account and hands back the user with a fresh
// token. A welcome email goes out best-effort through the queue.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*UserView, error) {
	if strings.TrimSpace(in.Password) == "" {
		return nil, &entity.ValidationError{Field: "password", Reason: "can't be blank"}
	}
	if existing, err := s.Users.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.Users.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(in.Email, in.Username, hash, "", "")
	if err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	s.sendWelcomeEmail(ctx, u)
	return userViewOf(u, token), nil
}

// Login checks credentials and issues a token. A missing account and a
// wrong password collapse into the same error so callers cannot probe
// which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*UserView, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return userViewOf(u, token), nil
}

// Current returns the authenticated user's own record, without a token;
// the handler echoes back the one the request carried.
func (s *UserService) Current(ctx context.Context, userID string) (*UserView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return userViewOf(u, ""), nil
}

type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// Update applies a partial profile update. Nil fields keep their
// current value; email and username moves are checked for uniqueness
// before anything is written.
func (s *UserService) Update(ctx context.Context, userID string, in UpdateUserInput) (*UserView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if in.Email != nil && *in.Email != u.Email {
		if existing, err := s.Users.GetByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != u.ID {
			return nil, ErrEmailTaken
		}
	}
	if in.Username != nil && *in.Username != u.Username {
		if existing, err := s.Users.GetByUsername(ctx, *in.Username); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != u.ID {
			return nil, ErrUsernameTaken
		}
	}

	var hash *string
	if in.Password != nil {
		if strings.TrimSpace(*in.Password) == "" {
			return nil, &entity.ValidationError{Field: "password", Reason: "can't be blank"}
		}
		h, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	if err := u.UpdateProfile(in.Email, in.Username, hash, in.Bio, in.Image); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return userViewOf(u, ""), nil
}

// UploadAvatar stores the image in GCS and points the profile at its
// public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*UserView, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("image storage not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(nil, nil, nil, nil, &url); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return userViewOf(u, ""), nil
}

func (s *UserService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Publisher == nil {
		return
	}
	data := templates.NewWelcomeData(s.AppName, s.AppURL, u.Username, u.Email)
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.ToMap(data),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

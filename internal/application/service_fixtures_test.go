package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/infrastructure/memory"
	"github.com/realworld-go/conduit/pkg/helpers"
)

// fixture is a per-test service graph over one in-memory store.
// Optional collaborators (queue, search, cache, object storage) stay
// nil; the services then degrade to plain CRUD, which is what these
// tests exercise.
type fixture struct {
	store    *memory.Store
	tokens   *helpers.TokenService
	users    *UserService
	profiles *ProfileService
	articles *ArticleService
	comments *CommentService
	tags     *TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := helpers.NewTokenService("fixture-secret-0123456789abcdef0123", time.Hour)
	return &fixture{
		store:    store,
		tokens:   tokens,
		users:    NewUserService(store.Users(), tokens, nil, nil, "", nil, "conduit", "http://localhost:3000"),
		profiles: NewProfileService(store.Users(), nil),
		articles: NewArticleService(store.Articles(), store.Users(), store.Favorites(), nil, nil, nil, ""),
		comments: NewCommentService(store.Comments(), store.Articles(), store.Users(), nil, nil, "conduit", "http://localhost:3000"),
		tags:     NewTagService(store.Tags(), nil, nil),
	}
}

// register creates an account named after the username and returns its
// user id.
func (f *fixture) register(t *testing.T, username string) string {
	t.Helper()
	_, err := f.users.Register(context.Background(), RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	u, err := f.store.Users().GetByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID
}

func (f *fixture) publish(t *testing.T, authorID, title string, tags ...string) *ArticleView {
	t.Helper()
	view, err := f.articles.Create(context.Background(), authorID, CreateArticleInput{
		Title:       title,
		Description: "desc",
		Body:        "body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return view
}

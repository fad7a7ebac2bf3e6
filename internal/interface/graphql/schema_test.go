package graphql

import (
	"context"
	"testing"
	"time"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/infrastructure/memory"
	"github.com/realworld-go/conduit/pkg/helpers"
)

// env executes queries against a schema backed by the in-memory store.
type env struct {
	schema   gql.Schema
	store    *memory.Store
	users    *application.UserService
	articles *application.ArticleService
	comments *application.CommentService
	profiles *application.ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	tokens := helpers.NewTokenService("graphql-secret-0123456789abcdef012", time.Hour)

	users := application.NewUserService(store.Users(), tokens, nil, nil, "", nil, "conduit", "http://localhost:3000")
	profiles := application.NewProfileService(store.Users(), nil)
	articles := application.NewArticleService(store.Articles(), store.Users(), store.Favorites(), nil, nil, nil, "")
	comments := application.NewCommentService(store.Comments(), store.Articles(), store.Users(), nil, nil, "conduit", "http://localhost:3000")
	tags := application.NewTagService(store.Tags(), nil, nil)

	schema, err := NewSchema(Services{
		Users:    users,
		Profiles: profiles,
		Articles: articles,
		Comments: comments,
		Tags:     tags,
	})
	require.NoError(t, err)

	return &env{
		schema:   schema,
		store:    store,
		users:    users,
		articles: articles,
		comments: comments,
		profiles: profiles,
	}
}

func (e *env) register(t *testing.T, username string) string {
	t.Helper()
	_, err := e.users.Register(context.Background(), application.RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	u, err := e.store.Users().GetByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID
}

func (e *env) publish(t *testing.T, authorID, title string, tags ...string) *application.ArticleView {
	t.Helper()
	view, err := e.articles.Create(context.Background(), authorID, application.CreateArticleInput{
		Title:       title,
		Description: "desc",
		Body:        "body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return view
}

// exec runs a query as the given viewer; empty viewerID is anonymous.
func (e *env) exec(viewerID, query string, vars map[string]interface{}) *gql.Result {
	ctx := context.Background()
	if viewerID != "" {
		ctx = WithViewer(ctx, viewerID)
	}
	return gql.Do(gql.Params{
		Schema:         e.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

// dig walks nested map results.
func dig(t *testing.T, v interface{}, path ...string) interface{} {
	t.Helper()
	for _, key := range path {
		m, ok := v.(map[string]interface{})
		require.True(t, ok, "expected map at %q", key)
		v = m[key]
	}
	return v
}

func TestQueryArticle(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")
	bobID := e.register(t, "bob")
	created := e.publish(t, aliceID, "GraphQL in Anger", "graphql")

	_, err := e.comments.Add(context.Background(), bobID, created.Slug, "Looking forward to part two.")
	require.NoError(t, err)
	_, err = e.profiles.Follow(context.Background(), bobID, "alice")
	require.NoError(t, err)

	result := e.exec(bobID, `
		query ($slug: String!) {
			article(slug: $slug) {
				title
				tagList
				author { username following }
				comments { body author { username } }
			}
		}
	`, map[string]interface{}{"slug": created.Slug})
	require.Empty(t, result.Errors)

	require.Equal(t, "GraphQL in Anger", dig(t, result.Data, "article", "title"))
	require.Equal(t, "alice", dig(t, result.Data, "article", "author", "username"))
	require.Equal(t, true, dig(t, result.Data, "article", "author", "following"))

	comments, ok := dig(t, result.Data, "article", "comments").([]interface{})
	require.True(t, ok)
	require.Len(t, comments, 1)
	require.Equal(t, "Looking forward to part two.", dig(t, comments[0], "body"))
	require.Equal(t, "bob", dig(t, comments[0], "author", "username"))
}

func TestQueryArticlesAndTags(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")
	e.publish(t, aliceID, "Tagged", "go")
	e.publish(t, aliceID, "Untagged")

	result := e.exec("", `
		{
			articles(tag: "go") {
				articlesCount
				articles { title }
			}
			tags
		}
	`, nil)
	require.Empty(t, result.Errors)

	require.Equal(t, 1, dig(t, result.Data, "articles", "articlesCount"))
	list, ok := dig(t, result.Data, "articles", "articles").([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	require.Equal(t, "Tagged", dig(t, list[0], "title"))

	tags, ok := dig(t, result.Data, "tags").([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"go"}, tags)
}

func TestViewerOnlyQueries(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")
	bobID := e.register(t, "bob")
	e.publish(t, aliceID, "For Followers")

	_, err := e.profiles.Follow(context.Background(), bobID, "alice")
	require.NoError(t, err)

	// Anonymous callers get an error, not someone else's data.
	result := e.exec("", `{ feed { articlesCount } }`, nil)
	require.NotEmpty(t, result.Errors)
	require.Contains(t, result.Errors[0].Message, "authentication required")

	result = e.exec("", `{ me { username } }`, nil)
	require.NotEmpty(t, result.Errors)

	result = e.exec(bobID, `
		{
			feed { articlesCount articles { title author { following } } }
			me { username email }
		}
	`, nil)
	require.Empty(t, result.Errors)
	require.Equal(t, 1, dig(t, result.Data, "feed", "articlesCount"))
	require.Equal(t, "bob", dig(t, result.Data, "me", "username"))
	require.Equal(t, "bob@example.com", dig(t, result.Data, "me", "email"))

	list := dig(t, result.Data, "feed", "articles").([]interface{})
	require.Equal(t, true, dig(t, list[0], "author", "following"))
}

func TestArticleMutations(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")

	// Anonymous mutation is refused.
	result := e.exec("", `
		mutation {
			createArticle(title: "T", description: "d", body: "b") { slug }
		}
	`, nil)
	require.NotEmpty(t, result.Errors)

	result = e.exec(aliceID, `
		mutation {
			createArticle(title: "Written over GraphQL", description: "d", body: "b", tagList: ["api"]) {
				slug
				title
				author { username }
			}
		}
	`, nil)
	require.Empty(t, result.Errors)
	require.Equal(t, "Written over GraphQL", dig(t, result.Data, "createArticle", "title"))
	slug, ok := dig(t, result.Data, "createArticle", "slug").(string)
	require.True(t, ok)
	require.Regexp(t, `^written-over-graphql-[a-z0-9]{6}$`, slug)

	result = e.exec(aliceID, `
		mutation ($slug: String!) {
			updateArticle(slug: $slug, body: "rewritten") { slug body }
		}
	`, map[string]interface{}{"slug": slug})
	require.Empty(t, result.Errors)
	require.Equal(t, slug, dig(t, result.Data, "updateArticle", "slug"))
	require.Equal(t, "rewritten", dig(t, result.Data, "updateArticle", "body"))

	result = e.exec(aliceID, `
		mutation ($slug: String!) {
			deleteArticle(slug: $slug)
		}
	`, map[string]interface{}{"slug": slug})
	require.Empty(t, result.Errors)
	require.Equal(t, true, dig(t, result.Data, "deleteArticle"))

	_, err := e.articles.Get(context.Background(), "", slug)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestSocialMutations(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")
	bobID := e.register(t, "bob")
	created := e.publish(t, aliceID, "Like and Subscribe")

	result := e.exec(bobID, `
		mutation ($slug: String!) {
			favoriteArticle(slug: $slug) { favorited favoritesCount }
			followUser(username: "alice") { following }
		}
	`, map[string]interface{}{"slug": created.Slug})
	require.Empty(t, result.Errors)
	require.Equal(t, true, dig(t, result.Data, "favoriteArticle", "favorited"))
	require.Equal(t, 1, dig(t, result.Data, "favoriteArticle", "favoritesCount"))
	require.Equal(t, true, dig(t, result.Data, "followUser", "following"))

	result = e.exec(bobID, `
		mutation ($slug: String!) {
			unfavoriteArticle(slug: $slug) { favorited favoritesCount }
			unfollowUser(username: "alice") { following }
		}
	`, map[string]interface{}{"slug": created.Slug})
	require.Empty(t, result.Errors)
	require.Equal(t, false, dig(t, result.Data, "unfavoriteArticle", "favorited"))
	require.Equal(t, 0, dig(t, result.Data, "unfavoriteArticle", "favoritesCount"))
	require.Equal(t, false, dig(t, result.Data, "unfollowUser", "following"))
}

func TestCommentMutations(t *testing.T) {
	e := newEnv(t)
	aliceID := e.register(t, "alice")
	bobID := e.register(t, "bob")
	created := e.publish(t, aliceID, "Open Thread")

	result := e.exec(bobID, `
		mutation ($slug: String!) {
			addComment(slug: $slug, body: "count me in") {
				id
				body
				author { username }
			}
		}
	`, map[string]interface{}{"slug": created.Slug})
	require.Empty(t, result.Errors)
	require.Equal(t, "count me in", dig(t, result.Data, "addComment", "body"))
	require.Equal(t, "bob", dig(t, result.Data, "addComment", "author", "username"))

	id, ok := dig(t, result.Data, "addComment", "id").(string)
	require.True(t, ok)

	// A bystander cannot delete; the error carries through the schema.
	carolID := e.register(t, "carol")
	result = e.exec(carolID, `
		mutation ($slug: String!, $id: ID!) {
			deleteComment(slug: $slug, id: $id)
		}
	`, map[string]interface{}{"slug": created.Slug, "id": id})
	require.NotEmpty(t, result.Errors)

	result = e.exec(bobID, `
		mutation ($slug: String!, $id: ID!) {
			deleteComment(slug: $slug, id: $id)
		}
	`, map[string]interface{}{"slug": created.Slug, "id": id})
	require.Empty(t, result.Errors)
	require.Equal(t, true, dig(t, result.Data, "deleteComment"))

	list, err := e.comments.List(context.Background(), "", created.Slug)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestQueryProfile(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice")

	result := e.exec("", `{ profile(username: "alice") { username following } }`, nil)
	require.Empty(t, result.Errors)
	require.Equal(t, "alice", dig(t, result.Data, "profile", "username"))
	require.Equal(t, false, dig(t, result.Data, "profile", "following"))

	result = e.exec("", `{ profile(username: "ghost") { username } }`, nil)
	require.NotEmpty(t, result.Errors)
}

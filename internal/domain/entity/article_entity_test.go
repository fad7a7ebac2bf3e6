package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	a, err := NewArticle("How to Train Your Dragon", "Ever wonder how?", "You have to believe", []string{"dragons", "training"}, "author-1")
	require.NoError(t, err)

	require.NotEmpty(t, a.ID)
	require.Equal(t, a.CreatedAt, a.UpdatedAt)
	require.False(t, a.CreatedAt.IsZero())
	require.Regexp(t, `^how-to-train-your-dragon-[a-z0-9]{6}$`, a.Slug)
	require.Equal(t, []string{"dragons", "training"}, a.TagList)
}

func TestNewArticleValidation(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		body        string
		field       string
	}{
		{"blank title", "  ", "desc", "body", "title"},
		{"blank description", "Title", "", "body", "description"},
		{"blank body", "Title", "desc", "   ", "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewArticle(tc.title, tc.description, tc.body, nil, "author-1")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewArticleAtPinsTimestamps(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	a, err := NewArticleAt("Pinned", "desc", "body", nil, "author-1", at)
	require.NoError(t, err)
	require.True(t, a.CreatedAt.Equal(at))
	require.True(t, a.UpdatedAt.Equal(at))
}

func TestUpdateTouchBumpsUpdatedAt(t *testing.T) {
	a, err := NewArticle("Hello, World!", "desc", "body", nil, "author-1")
	require.NoError(t, err)
	created, slug := a.CreatedAt, a.Slug

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, a.Update(nil, nil, nil))

	require.True(t, a.UpdatedAt.After(created))
	require.True(t, a.CreatedAt.Equal(created))
	require.Equal(t, slug, a.Slug)
	require.Equal(t, "Hello, World!", a.Title)
	require.Equal(t, "body", a.Body)
}

func TestUpdateTitleRecomputesSlug(t *testing.T) {
	a, err := NewArticle("Hello, World!", "desc", "body", nil, "author-1")
	require.NoError(t, err)
	old := a.Slug

	title := "Updated Title"
	require.NoError(t, a.Update(&title, nil, nil))

	require.Equal(t, "Updated Title", a.Title)
	require.Regexp(t, `^updated-title-[a-z0-9]{6}$`, a.Slug)
	require.NotEqual(t, old, a.Slug)
}

func TestUpdateBodyKeepsSlug(t *testing.T) {
	a, err := NewArticle("Hello, World!", "desc", "body", nil, "author-1")
	require.NoError(t, err)
	old := a.Slug

	body := "rewritten body"
	require.NoError(t, a.Update(nil, nil, &body))

	require.Equal(t, old, a.Slug)
	require.Equal(t, "rewritten body", a.Body)
	require.Equal(t, "desc", a.Description)
}

func TestUpdateSameTitleKeepsSlug(t *testing.T) {
	a, err := NewArticle("Hello, World!", "desc", "body", nil, "author-1")
	require.NoError(t, err)
	old := a.Slug

	title := "Hello, World!"
	require.NoError(t, a.Update(&title, nil, nil))
	require.Equal(t, old, a.Slug)
}

func TestUpdateValidationLeavesArticleUntouched(t *testing.T) {
	a, err := NewArticle("Hello, World!", "desc", "body", nil, "author-1")
	require.NoError(t, err)
	title, blank := "New Title", ""

	err = a.Update(&title, nil, &blank)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "body", verr.Field)
	require.Equal(t, "Hello, World!", a.Title)
	require.Equal(t, "body", a.Body)
	require.True(t, a.UpdatedAt.Equal(a.CreatedAt))
}

func TestToSlug(t *testing.T) {
	t.Run("pattern", func(t *testing.T) {
		require.Regexp(t, `^hello-world-[a-z0-9]{6}$`, ToSlug("Hello, World!"))
	})
	t.Run("suffix differs per call", func(t *testing.T) {
		require.NotEqual(t, ToSlug("Hello, World!"), ToSlug("Hello, World!"))
	})
	t.Run("special characters only", func(t *testing.T) {
		require.Regexp(t, `^[a-z0-9]{6}$`, ToSlug("!!! ???"))
	})
	t.Run("collapses separator runs", func(t *testing.T) {
		require.Regexp(t, `^hello-world-[a-z0-9]{6}$`, ToSlug("  Hello --- World  "))
	})
}

func TestNormalizeTags(t *testing.T) {
	a, err := NewArticle("Tagged", "desc", "body", []string{"go", " web ", "go", "", "api"}, "author-1")
	require.NoError(t, err)
	require.Equal(t, []string{"api", "go", "web"}, a.TagList)
}

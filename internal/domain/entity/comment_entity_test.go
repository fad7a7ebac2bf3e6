package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	c, err := NewComment("Nice post!", "user-1", "article-1")
	require.NoError(t, err)

	require.NotEmpty(t, c.ID)
	require.Equal(t, "Nice post!", c.Body)
	require.Equal(t, "user-1", c.AuthorID)
	require.Equal(t, "article-1", c.ArticleID)
	require.False(t, c.CreatedAt.IsZero())
}

func TestNewCommentValidation(t *testing.T) {
	_, err := NewComment("  ", "user-1", "article-1")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "body", verr.Field)
}

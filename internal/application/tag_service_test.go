package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagList(t *testing.T) {
	f := newFixture(t)
	aliceID := f.register(t, "alice")

	tags, err := f.tags.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, tags)

	f.publish(t, aliceID, "Post A", "go", "testing")
	f.publish(t, aliceID, "Post B", "go")

	// Distinct and alphabetical.
	tags, err = f.tags.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"go", "testing"}, tags)
}

func TestTagListAfterArticleDelete(t *testing.T) {
	f := newFixture(t)
	aliceID := f.register(t, "alice")
	only := f.publish(t, aliceID, "Short Lived", "ephemeral")

	require.NoError(t, f.articles.Delete(context.Background(), aliceID, only.Slug))

	tags, err := f.tags.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, tags)
}

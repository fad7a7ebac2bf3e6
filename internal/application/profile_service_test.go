package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/domain/entity"
)

func TestProfileGetAnonymous(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	p, err := f.profiles.Get(context.Background(), "", "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", p.Username)
	require.False(t, p.Following)
}

func TestProfileNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.profiles.Get(context.Background(), "", "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFollowUnfollow(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	bobID := f.register(t, "bob")

	p, err := f.profiles.Follow(context.Background(), bobID, "alice")
	require.NoError(t, err)
	require.True(t, p.Following)

	// Follow is idempotent.
	p, err = f.profiles.Follow(context.Background(), bobID, "alice")
	require.NoError(t, err)
	require.True(t, p.Following)

	p, err = f.profiles.Get(context.Background(), bobID, "alice")
	require.NoError(t, err)
	require.True(t, p.Following)

	p, err = f.profiles.Unfollow(context.Background(), bobID, "alice")
	require.NoError(t, err)
	require.False(t, p.Following)

	// Unfollowing someone you never followed is a no-op.
	p, err = f.profiles.Unfollow(context.Background(), bobID, "alice")
	require.NoError(t, err)
	require.False(t, p.Following)
}

func TestFollowSelf(t *testing.T) {
	f := newFixture(t)
	aliceID := f.register(t, "alice")

	_, err := f.profiles.Follow(context.Background(), aliceID, "alice")
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "username", verr.Field)
}

func TestFollowIsOneWay(t *testing.T) {
	f := newFixture(t)
	aliceID := f.register(t, "alice")
	bobID := f.register(t, "bob")

	_, err := f.profiles.Follow(context.Background(), bobID, "alice")
	require.NoError(t, err)

	p, err := f.profiles.Get(context.Background(), aliceID, "bob")
	require.NoError(t, err)
	require.False(t, p.Following)
}

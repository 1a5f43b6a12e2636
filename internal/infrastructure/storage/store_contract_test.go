package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"video-annotator/internal/domain/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

// runStoreContract checks the behaviour every Store backend shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repositories.Store) {
	ctx := context.Background()
	uri := "file:///videos/a b.mp4"

	t.Run("missing key reads empty", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Read(ctx, repositories.CommentsKey(uri))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		s := newStore(t)
		key := repositories.DrawingsKey(uri)
		want := raw(`{"id":"d1","timestamp":1.5}`, `{"id":"d2","timestamp":0}`)

		require.NoError(t, s.Write(ctx, key, want))
		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("round trip empty sequence", func(t *testing.T) {
		s := newStore(t)
		key := repositories.CommentsKey(uri)
		require.NoError(t, s.Write(ctx, key, raw(`{"id":"c1","timestamp":1}`)))
		require.NoError(t, s.Write(ctx, key, raw()))

		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("write replaces", func(t *testing.T) {
		s := newStore(t)
		key := repositories.RegistryKey()
		require.NoError(t, s.Write(ctx, key, raw(`"a.mp4"`, `"b.mp4"`)))
		require.NoError(t, s.Write(ctx, key, raw(`"c.mp4"`)))

		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, raw(`"c.mp4"`), got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		key := repositories.CommentsKey(uri)
		require.NoError(t, s.Write(ctx, key, raw(`{"id":"c1","timestamp":1}`)))
		require.NoError(t, s.Delete(ctx, key))
		require.NoError(t, s.Delete(ctx, key))

		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("apply runs every op", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, repositories.CommentsKey(uri), raw(`{"id":"c1","timestamp":1}`)))

		err := s.Apply(ctx,
			repositories.WriteOp(repositories.DrawingsKey(uri), raw(`{"id":"d1","timestamp":2}`)),
			repositories.DeleteOp(repositories.CommentsKey(uri)),
			repositories.WriteOp(repositories.RegistryKey(), raw(`"x.mp4"`)),
		)
		require.NoError(t, err)

		drawings, err := s.Read(ctx, repositories.DrawingsKey(uri))
		require.NoError(t, err)
		assert.Len(t, drawings, 1)

		comments, err := s.Read(ctx, repositories.CommentsKey(uri))
		require.NoError(t, err)
		assert.Empty(t, comments)

		registry, err := s.Read(ctx, repositories.RegistryKey())
		require.NoError(t, err)
		assert.Equal(t, raw(`"x.mp4"`), registry)
	})

	t.Run("long uri", func(t *testing.T) {
		s := newStore(t)
		long := "file:///data/user/0/com.example.annotator/cache/ImagePicker/" +
			strings.Repeat("Ünïcødé%20clip/", 20) + "3F2A9C1D-7B4E.mp4"
		require.Greater(t, len(long), 300)
		key := repositories.CommentsKey(long)

		require.NoError(t, s.Write(ctx, key, raw(`{"id":"c1","timestamp":1}`)))
		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, raw(`{"id":"c1","timestamp":1}`), got)

		keys, err := s.ListAllKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repositories.Key{key}, keys)
	})

	t.Run("list all keys", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Write(ctx, repositories.RegistryKey(), raw(`"a.mp4"`)))
		require.NoError(t, s.Write(ctx, repositories.CommentsKey("a.mp4"), raw()))
		require.NoError(t, s.Write(ctx, repositories.DrawingsKey(uri), raw()))

		keys, err := s.ListAllKeys(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []repositories.Key{
			repositories.RegistryKey(),
			repositories.CommentsKey("a.mp4"),
			repositories.DrawingsKey(uri),
		}, keys)
	})
}

package fileutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")

	require.NoError(t, WriteFileAtomic(path, []byte("[1]")))
	require.NoError(t, WriteFileAtomic(path, []byte("[2]")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestKeyFileName(t *testing.T) {
	long := "video:comments:file:///data/user/0/com.example/cache/ImagePicker/" +
		strings.Repeat("ünïcødé%20clip-", 20) + ".mp4"
	names := map[string]bool{}
	for _, key := range []string{"videos", "video:comments:file:///a/b c.mp4", "video:drawings:ü/?x", long} {
		name := KeyFileName(key)
		assert.NotContains(t, name, "/")
		assert.Len(t, name, 69)
		assert.True(t, IsKeyFileName(name))
		names[name] = true
	}
	assert.Len(t, names, 4)
	assert.Equal(t, KeyFileName(long), KeyFileName(long))

	assert.False(t, IsKeyFileName(KeyFileName("videos")+".tmp.123"))
	assert.False(t, IsKeyFileName("***.json"))
	assert.False(t, IsKeyFileName(strings.Repeat("z", 64)+".json"))
}

func TestWriteFileAtomic_LongKey(t *testing.T) {
	dir := t.TempDir()
	key := "video:drawings:" + strings.Repeat("/very/long/path%2F", 40) + "clip.mp4"
	path := filepath.Join(dir, KeyFileName(key))

	require.NoError(t, WriteFileAtomic(path, []byte("[]")))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

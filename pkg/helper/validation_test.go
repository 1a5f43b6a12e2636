package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoNameFromURI(t *testing.T) {
	assert.Equal(t, "clip.mp4", VideoNameFromURI("file:///videos/clip.mp4"))
	assert.Equal(t, "clip.mp4", VideoNameFromURI("clip.mp4"))
	assert.Equal(t, "Unknown Video", VideoNameFromURI("https://example.com/videos/"))
	assert.Equal(t, "Unknown Video", VideoNameFromURI(""))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimestamp(0))
	assert.Equal(t, "00:05", FormatTimestamp(5.99))
	assert.Equal(t, "01:05", FormatTimestamp(65))
	assert.Equal(t, "61:01", FormatTimestamp(3661))
	assert.Equal(t, "00:00", FormatTimestamp(-4))
	assert.Equal(t, "00:00", FormatTimestamp(math.NaN()))
}

func TestValidTimestamp(t *testing.T) {
	assert.True(t, ValidTimestamp(0))
	assert.True(t, ValidTimestamp(12.5))
	assert.False(t, ValidTimestamp(-0.01))
	assert.False(t, ValidTimestamp(math.Inf(1)))
	assert.False(t, ValidTimestamp(math.NaN()))
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("a/b/clip.MP4"))
	assert.True(t, IsVideoFile("https://cdn.example.com/clip.webm?sig=abc"))
	assert.False(t, IsVideoFile("notes.txt"))
	assert.False(t, IsVideoFile("clip"))
	assert.Equal(t, "video/quicktime", GetMimeTypeFromExtension("x.mov"))
}

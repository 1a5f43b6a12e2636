package helper

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"video-annotator/pkg/constants"
)

func GetMimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/avi"
	case ".mkv":
		return "video/mkv"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

func IsVideoFile(filePath string) bool {
	return strings.HasPrefix(GetMimeTypeFromExtension(stripQuery(filePath)), "video/")
}

// VideoNameFromURI returns the last path segment of uri.
func VideoNameFromURI(uri string) string {
	name := uri[strings.LastIndex(uri, "/")+1:]
	if name == "" {
		return constants.UnknownVideoName
	}
	return name
}

// FormatTimestamp renders seconds as mm:ss.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ValidTimestamp reports whether seconds can anchor an annotation.
func ValidTimestamp(seconds float64) bool {
	return !math.IsNaN(seconds) && !math.IsInf(seconds, 0) && seconds >= 0
}

func stripQuery(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		return uri[:i]
	}
	return uri
}

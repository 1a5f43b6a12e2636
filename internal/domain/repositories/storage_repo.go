package repositories

import (
	"context"
	"encoding/json"
	"strings"
)

// RecordKind tags what a Store key holds.
type RecordKind int

const (
	KindRegistry RecordKind = iota
	KindComments
	KindDrawings
)

const (
	registryKey = "videos"
	videoPrefix = "video:"
)

func (k RecordKind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindComments:
		return "comments"
	case KindDrawings:
		return "drawings"
	default:
		return "unknown"
	}
}

// Key addresses one record collection. VideoURI is empty for the registry.
type Key struct {
	Kind     RecordKind
	VideoURI string
}

func RegistryKey() Key { return Key{Kind: KindRegistry} }

func CommentsKey(videoURI string) Key { return Key{Kind: KindComments, VideoURI: videoURI} }

func DrawingsKey(videoURI string) Key { return Key{Kind: KindDrawings, VideoURI: videoURI} }

// VideoKeys returns both annotation keys of a video, drawings first.
func VideoKeys(videoURI string) []Key {
	return []Key{DrawingsKey(videoURI), CommentsKey(videoURI)}
}

// String encodes the key as "videos" or "video:<kind>:<uri>".
func (k Key) String() string {
	if k.Kind == KindRegistry {
		return registryKey
	}
	return videoPrefix + k.Kind.String() + ":" + k.VideoURI
}

// ParseKey is the inverse of Key.String. Unknown keys report false.
func ParseKey(s string) (Key, bool) {
	if s == registryKey {
		return RegistryKey(), true
	}
	if !strings.HasPrefix(s, videoPrefix) {
		return Key{}, false
	}
	kind, uri, ok := strings.Cut(strings.TrimPrefix(s, videoPrefix), ":")
	if !ok || uri == "" {
		return Key{}, false
	}
	switch kind {
	case KindComments.String():
		return CommentsKey(uri), true
	case KindDrawings.String():
		return DrawingsKey(uri), true
	}
	return Key{}, false
}

// Op is one step of a Store batch: a full replacement, or a delete when Delete is set.
type Op struct {
	Key     Key
	Records []json.RawMessage
	Delete  bool
}

func WriteOp(key Key, records []json.RawMessage) Op { return Op{Key: key, Records: records} }

func DeleteOp(key Key) Op { return Op{Key: key, Delete: true} }

// Store is a raw key-value surface holding ordered JSON record sequences.
// Read never fails on a missing key; Write replaces the whole sequence.
// Apply runs ops in order, atomically when the backend supports it.
type Store interface {
	Read(ctx context.Context, key Key) ([]json.RawMessage, error)
	Write(ctx context.Context, key Key, records []json.RawMessage) error
	Delete(ctx context.Context, keys ...Key) error
	Apply(ctx context.Context, ops ...Op) error
	ListAllKeys(ctx context.Context) ([]Key, error)
	Close() error
}

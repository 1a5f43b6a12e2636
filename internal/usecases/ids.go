package usecases

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out annotation ids that are unique within a video and
// sort in creation order.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues time-ordered UUIDv7 ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceIDs issues prefix000001, prefix000002, ...
type SequenceIDs struct {
	prefix string
	n      atomic.Uint64
}

func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

func (s *SequenceIDs) NewID() string {
	return fmt.Sprintf("%s%06d", s.prefix, s.n.Add(1))
}

// Clock returns the creation instant stamped on new annotations.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTopics means the course has no content yet. Activation fails but
	// the enrollment itself should survive, flagged for manual follow-up.
	ErrNoTopics = errors.New("course has no topics")

	// ErrNotAccessible means a completion was attempted on a topic that was
	// never unlocked for the student. Rejected, never silently created.
	ErrNotAccessible = errors.New("topic is not accessible")

	// ErrTopicNotFound means the referenced topic does not belong to the course.
	ErrTopicNotFound = errors.New("topic not found in course")
)

// storeErr wraps a store failure with the failing operation. Store errors
// propagate to the caller as-is; the engine never retries locally.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

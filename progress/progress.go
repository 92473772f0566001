// Package progress implements the sequential topic-unlock engine: a course's
// topics form a total order and a student's unlocked set is always a prefix of
// it. Topics unlock one at a time as the previous topic is completed, either
// by student self-report or by a graded test. The engine is storage-agnostic;
// callers supply the catalog, ledger and enrollment stores.
package progress

import "time"

// Source identifies what triggered a completion.
type Source string

const (
	SourceSelfReport Source = "SELF_REPORT"
	SourceGrading    Source = "GRADING"
)

// Enrollment status values as seen by the engine.
const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusRevoked   = "REVOKED"
)

// Topic is an ordered content unit. OrderIndex is unique within a course.
type Topic struct {
	ID         uint
	OrderIndex int
}

// Record is the unlock/completion state for one (student, course, topic) key.
type Record struct {
	UserID      uint
	CourseID    uint
	TopicID     uint
	IsUnlocked  bool
	IsCompleted bool
	UpdatedAt   time.Time
}

// Patch is a merge-patch upsert for a ledger record. Nil fields keep whatever
// the store already holds, so unlocking a topic can never reset a completion.
type Patch struct {
	UserID      uint
	CourseID    uint
	TopicID     uint
	IsUnlocked  *bool
	IsCompleted *bool
	Source      Source
}

// Enrollment is the engine's view of a student's course membership.
type Enrollment struct {
	UserID    uint
	CourseID  uint
	Status    string
	UpdatedAt time.Time
}

// TopicCatalog lists a course's topics. Read-only to this package.
type TopicCatalog interface {
	// ListTopics returns the course's topics ordered ascending by OrderIndex.
	ListTopics(courseID uint) ([]Topic, error)
}

// Ledger stores per-student unlock/completion records.
type Ledger interface {
	// Get returns the record for the key, or nil when none exists.
	Get(userID, courseID, topicID uint) (*Record, error)
	// Upsert applies a merge-patch keyed on (user, course, topic).
	Upsert(p Patch) error
	// ListByStudent returns all records for a (student, course) pair.
	ListByStudent(userID, courseID uint) ([]Record, error)
}

// EnrollmentDirectory exposes enrollments owned by the surrounding system.
type EnrollmentDirectory interface {
	Get(userID, courseID uint) (*Enrollment, error)
	SetStatus(userID, courseID uint, status string) error
	// ListByCourse returns all enrollments for a course, any status.
	ListByCourse(courseID uint) ([]Enrollment, error)
}

func boolPtr(b bool) *bool { return &b }

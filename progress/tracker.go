package progress

import "sort"

// Tracker drives unlock state transitions against the supplied stores. All
// operations are synchronous single-record upserts and safe to retry.
type Tracker struct {
	topics      TopicCatalog
	ledger      Ledger
	enrollments EnrollmentDirectory
}

// NewTracker wires a Tracker to its collaborators.
func NewTracker(topics TopicCatalog, ledger Ledger, enrollments EnrollmentDirectory) *Tracker {
	return &Tracker{
		topics:      topics,
		ledger:      ledger,
		enrollments: enrollments,
	}
}

// Activate seeds unlock state for a fresh enrollment: the topic with the
// smallest order index is unlocked. Returns the unlocked topic's ID. Safe to
// retry; an already-unlocked first topic is confirmed without modification.
// Returns ErrNoTopics when the course has no content, with no record written.
func (t *Tracker) Activate(userID, courseID uint) (uint, error) {
	topics, err := t.listOrdered(courseID)
	if err != nil {
		return 0, err
	}
	if len(topics) == 0 {
		return 0, ErrNoTopics
	}

	first := topics[0]
	existing, err := t.ledger.Get(userID, courseID, first.ID)
	if err != nil {
		return 0, storeErr("get progress", err)
	}
	if existing != nil && existing.IsUnlocked {
		return first.ID, nil
	}

	patch := Patch{
		UserID:     userID,
		CourseID:   courseID,
		TopicID:    first.ID,
		IsUnlocked: boolPtr(true),
	}
	if err := t.ledger.Upsert(patch); err != nil {
		return 0, storeErr("unlock first topic", err)
	}
	return first.ID, nil
}

// MarkCompleted records a topic as finished. The topic must already be
// unlocked for the student; otherwise ErrNotAccessible. Completing an
// already-completed topic is a no-op success, so retries and double-clicks
// cannot re-trigger downstream unlocks. Advancing is the caller's separate
// call: graded completions gate on a pass threshold first, self-reported
// video completions advance unconditionally.
func (t *Tracker) MarkCompleted(userID, courseID, topicID uint, source Source) error {
	record, err := t.ledger.Get(userID, courseID, topicID)
	if err != nil {
		return storeErr("get progress", err)
	}
	if record == nil || !record.IsUnlocked {
		return ErrNotAccessible
	}
	if record.IsCompleted {
		return nil
	}

	patch := Patch{
		UserID:      userID,
		CourseID:    courseID,
		TopicID:     topicID,
		IsCompleted: boolPtr(true),
		Source:      source,
	}
	if err := t.ledger.Upsert(patch); err != nil {
		return storeErr("mark completed", err)
	}
	return nil
}

// Advance unlocks the topic following completedTopicID in course order and
// returns its ID, or 0 when the course's content is exhausted (no mutation).
// completedTopicID must be unlocked and completed for the student;
// ErrNotAccessible otherwise, so the unlocked set stays a contiguous prefix
// even if a caller skips MarkCompleted. Idempotent: a second call confirms
// state without re-unlocking, and an already-completed downstream record is
// never reset to incomplete.
func (t *Tracker) Advance(userID, courseID, completedTopicID uint) (uint, error) {
	topics, err := t.listOrdered(courseID)
	if err != nil {
		return 0, err
	}

	completedIdx := -1
	for i, topic := range topics {
		if topic.ID == completedTopicID {
			completedIdx = i
			break
		}
	}
	if completedIdx == -1 {
		return 0, ErrTopicNotFound
	}

	// The given topic must actually be unlocked and completed for this
	// student; otherwise advancing would punch a hole in the unlocked prefix.
	completed, err := t.ledger.Get(userID, courseID, completedTopicID)
	if err != nil {
		return 0, storeErr("get progress", err)
	}
	if completed == nil || !completed.IsUnlocked || !completed.IsCompleted {
		return 0, ErrNotAccessible
	}

	// Smallest order index strictly greater than the completed topic's.
	// listOrdered breaks order ties by lowest ID, so scanning forward past
	// any duplicate index positions stays deterministic.
	next := uint(0)
	for _, topic := range topics[completedIdx+1:] {
		if topic.OrderIndex > topics[completedIdx].OrderIndex {
			next = topic.ID
			break
		}
	}
	if next == 0 {
		return 0, nil
	}

	existing, err := t.ledger.Get(userID, courseID, next)
	if err != nil {
		return 0, storeErr("get progress", err)
	}
	if existing != nil && existing.IsUnlocked {
		return next, nil
	}

	if err := t.Unlock(userID, courseID, next); err != nil {
		return 0, err
	}
	return next, nil
}

// Unlock grants access to a single topic, preserving any completion state the
// record already carries. Also serves the admin manual-unlock path.
func (t *Tracker) Unlock(userID, courseID, topicID uint) error {
	patch := Patch{
		UserID:     userID,
		CourseID:   courseID,
		TopicID:    topicID,
		IsUnlocked: boolPtr(true),
	}
	if err := t.ledger.Upsert(patch); err != nil {
		return storeErr("unlock topic", err)
	}
	return nil
}

// IsUnlocked reports whether the student may access the topic.
func (t *Tracker) IsUnlocked(userID, courseID, topicID uint) (bool, error) {
	record, err := t.ledger.Get(userID, courseID, topicID)
	if err != nil {
		return false, storeErr("get progress", err)
	}
	return record != nil && record.IsUnlocked, nil
}

// listOrdered returns the course's topics sorted by order index, ties broken
// by lowest ID. The catalog promises ascending order already; sorting again
// keeps the engine deterministic if that promise is ever broken upstream.
func (t *Tracker) listOrdered(courseID uint) ([]Topic, error) {
	topics, err := t.topics.ListTopics(courseID)
	if err != nil {
		return nil, storeErr("list topics", err)
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].OrderIndex != topics[j].OrderIndex {
			return topics[i].OrderIndex < topics[j].OrderIndex
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

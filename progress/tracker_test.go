package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	courseID  = uint(10)
	studentID = uint(1)

	topicT1 = uint(101)
	topicT2 = uint(102)
	topicT3 = uint(103)
)

func threeTopicStore() *memStore {
	store := newMemStore()
	store.addTopics(courseID,
		Topic{ID: topicT1, OrderIndex: 1},
		Topic{ID: topicT2, OrderIndex: 2},
		Topic{ID: topicT3, OrderIndex: 3},
	)
	store.addEnrollment(studentID, courseID, StatusActive)
	return store
}

func TestActivate_UnlocksFirstTopicOnly(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	first, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, topicT1, first)

	records, _ := store.ListByStudent(studentID, courseID)
	require.Len(t, records, 1)
	assert.Equal(t, topicT1, records[0].TopicID)
	assert.True(t, records[0].IsUnlocked)
	assert.False(t, records[0].IsCompleted)
}

func TestActivate_PicksSmallestOrderIndex(t *testing.T) {
	store := newMemStore()
	// Catalog returned out of order; the engine must not depend on it.
	store.addTopics(courseID,
		Topic{ID: topicT3, OrderIndex: 7},
		Topic{ID: topicT1, OrderIndex: 2},
		Topic{ID: topicT2, OrderIndex: 5},
	)
	tracker := NewTracker(store, store, memDirectory{store})

	first, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, topicT1, first)
}

func TestActivate_Idempotent(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	first, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	upserts := store.upserts
	again, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, upserts, store.upserts, "retry must not write")
}

func TestActivate_EmptyCourse(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.ErrorIs(t, err, ErrNoTopics)
	assert.Zero(t, store.upserts, "no record may be created")
}

func TestMarkCompleted_RejectsLockedTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	// T2 has no record at all: skipping ahead is rejected, not created.
	err = tracker.MarkCompleted(studentID, courseID, topicT2, SourceSelfReport)
	require.ErrorIs(t, err, ErrNotAccessible)

	records, _ := store.ListByStudent(studentID, courseID)
	assert.Len(t, records, 1)

	// T3 has a record but is explicitly locked (e.g. an admin re-locked it).
	// A completion attempt against it is the same tampering case.
	require.NoError(t, store.Upsert(Patch{
		UserID: studentID, CourseID: courseID, TopicID: topicT3,
		IsUnlocked: boolPtr(false),
	}))

	upserts := store.upserts
	err = tracker.MarkCompleted(studentID, courseID, topicT3, SourceSelfReport)
	require.ErrorIs(t, err, ErrNotAccessible)
	assert.Equal(t, upserts, store.upserts, "rejected completion must not write")

	record, _ := store.Get(studentID, courseID, topicT3)
	require.NotNil(t, record)
	assert.False(t, record.IsCompleted)
}

func TestAdvance_RejectsUncompletedTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	// T1 is unlocked but not completed: advancing over it would unlock T2
	// past an unfinished topic and break the contiguous prefix.
	upserts := store.upserts
	_, err = tracker.Advance(studentID, courseID, topicT1)
	require.ErrorIs(t, err, ErrNotAccessible)
	assert.Equal(t, upserts, store.upserts, "rejected advance must not write")

	// T2 has no record at all; advancing over it is rejected the same way.
	_, err = tracker.Advance(studentID, courseID, topicT2)
	require.ErrorIs(t, err, ErrNotAccessible)

	record, _ := store.Get(studentID, courseID, topicT2)
	assert.Nil(t, record)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))

	record, _ := store.Get(studentID, courseID, topicT1)
	stamp := record.UpdatedAt

	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))
	record, _ = store.Get(studentID, courseID, topicT1)
	assert.Equal(t, stamp, record.UpdatedAt, "second call must not re-mutate")
}

func TestAdvance_Walkthrough(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))

	next, err := tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)
	assert.Equal(t, topicT2, next)

	unlocked, _ := store.Get(studentID, courseID, topicT2)
	require.NotNil(t, unlocked)
	assert.True(t, unlocked.IsUnlocked)

	// T3 stays locked.
	locked, _ := store.Get(studentID, courseID, topicT3)
	assert.Nil(t, locked)
}

func TestAdvance_Idempotent(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))

	next, err := tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)
	require.Equal(t, topicT2, next)

	upserts := store.upserts
	again, err := tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)
	assert.Equal(t, topicT2, again)
	assert.Equal(t, upserts, store.upserts, "second advance must be a no-op")
}

func TestAdvance_NeverResetsCompletedDownstream(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	// T2 was manually unlocked and completed, then its unlock flag was lost
	// (e.g. a bad bulk edit). Advancing over T1 must restore the unlock
	// without downgrading the completion.
	require.NoError(t, store.Upsert(Patch{
		UserID: studentID, CourseID: courseID, TopicID: topicT2,
		IsUnlocked: boolPtr(false), IsCompleted: boolPtr(true),
	}))
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))

	next, err := tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)
	require.Equal(t, topicT2, next)

	record, _ := store.Get(studentID, courseID, topicT2)
	assert.True(t, record.IsUnlocked)
	assert.True(t, record.IsCompleted, "completion must survive the unlock")
}

func TestAdvance_LastTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	for _, id := range []uint{topicT1, topicT2, topicT3} {
		require.NoError(t, tracker.Unlock(studentID, courseID, id))
		require.NoError(t, tracker.MarkCompleted(studentID, courseID, id, SourceSelfReport))
	}

	upserts := store.upserts
	next, err := tracker.Advance(studentID, courseID, topicT3)
	require.NoError(t, err)
	assert.Zero(t, next, "no next topic after the last one")
	assert.Equal(t, upserts, store.upserts, "content exhausted: no mutation")
}

func TestAdvance_UnknownTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Advance(studentID, courseID, 999)
	require.ErrorIs(t, err, ErrTopicNotFound)
}

func TestAdvance_DuplicateOrderIndexIsDeterministic(t *testing.T) {
	store := newMemStore()
	// Duplicate order_index should never happen, but must not crash: the
	// lowest-ID topic wins deterministically.
	store.addTopics(courseID,
		Topic{ID: topicT1, OrderIndex: 1},
		Topic{ID: topicT3, OrderIndex: 2},
		Topic{ID: topicT2, OrderIndex: 2},
	)
	tracker := NewTracker(store, store, memDirectory{store})

	require.NoError(t, tracker.Unlock(studentID, courseID, topicT1))
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))

	next, err := tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)
	assert.Equal(t, topicT2, next)
}

func TestUnlockedSetStaysPrefix(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	checkPrefix := func() {
		t.Helper()
		_, contiguous := store.unlockedPrefixLen(studentID, courseID)
		require.True(t, contiguous, "unlocked set must be a contiguous prefix")
	}

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	checkPrefix()

	for _, id := range []uint{topicT1, topicT2, topicT3} {
		require.NoError(t, tracker.MarkCompleted(studentID, courseID, id, SourceSelfReport))
		checkPrefix()
		_, err := tracker.Advance(studentID, courseID, id)
		require.NoError(t, err)
		checkPrefix()
	}

	n, _ := store.unlockedPrefixLen(studentID, courseID)
	assert.Equal(t, 3, n)
}

func TestStoreFailurePropagates(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	storeDown := errors.New("connection refused")
	store.failWith = storeDown

	_, err = tracker.Activate(studentID, courseID)
	assert.ErrorIs(t, err, storeDown)

	err = tracker.MarkCompleted(studentID, courseID, topicT1, SourceGrading)
	assert.ErrorIs(t, err, storeDown)

	_, err = tracker.Advance(studentID, courseID, topicT1)
	assert.ErrorIs(t, err, storeDown)
}

func TestIsUnlocked(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)

	unlocked, err := tracker.IsUnlocked(studentID, courseID, topicT1)
	require.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = tracker.IsUnlocked(studentID, courseID, topicT2)
	require.NoError(t, err)
	assert.False(t, unlocked)
}

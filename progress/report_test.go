package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_ProgressAndCurrentTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	// T1 completed, T2 unlocked-incomplete, T3 locked.
	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkCompleted(studentID, courseID, topicT1, SourceSelfReport))
	_, err = tracker.Advance(studentID, courseID, topicT1)
	require.NoError(t, err)

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	row := summaries[0]
	assert.Equal(t, studentID, row.UserID)
	assert.Equal(t, 33, row.ProgressPercent)
	assert.Equal(t, 1, row.CompletedCount)
	assert.Equal(t, 3, row.TotalTopics)
	assert.Equal(t, topicT2, row.CurrentTopicID)
	assert.False(t, row.CurrentTopicCompleted)
}

func TestReport_CompletedEnrollmentHasNoCurrentTopic(t *testing.T) {
	store := threeTopicStore()
	store.addEnrollment(studentID, courseID, StatusCompleted)
	tracker := NewTracker(store, store, memDirectory{store})

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].CurrentTopicID)
}

func TestReport_FallsBackToHighestUnlocked(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	// T1 and T2 both completed, T3 not yet unlocked: the student is waiting
	// for the next unlock, so the highest unlocked topic stands in.
	for _, id := range []uint{topicT1, topicT2} {
		require.NoError(t, tracker.Unlock(studentID, courseID, id))
		require.NoError(t, tracker.MarkCompleted(studentID, courseID, id, SourceGrading))
	}

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, topicT2, summaries[0].CurrentTopicID)
	assert.True(t, summaries[0].CurrentTopicCompleted)
	assert.Equal(t, 67, summaries[0].ProgressPercent)
}

func TestReport_NothingUnlockedShowsFirstTopic(t *testing.T) {
	store := threeTopicStore()
	tracker := NewTracker(store, store, memDirectory{store})

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, topicT1, summaries[0].CurrentTopicID)
	assert.Zero(t, summaries[0].ProgressPercent)
}

func TestReport_ExcludesRevoked(t *testing.T) {
	store := threeTopicStore()
	store.addEnrollment(2, courseID, StatusRevoked)
	tracker := NewTracker(store, store, memDirectory{store})

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, studentID, summaries[0].UserID)
}

func TestReport_ZeroTopicsNeverDivides(t *testing.T) {
	store := newMemStore()
	store.addEnrollment(studentID, courseID, StatusActive)
	tracker := NewTracker(store, store, memDirectory{store})

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].ProgressPercent)
	assert.Zero(t, summaries[0].CurrentTopicID)
}

func TestReport_SortedByLastActivityDesc(t *testing.T) {
	store := threeTopicStore()
	store.addEnrollment(2, courseID, StatusActive)
	store.addEnrollment(3, courseID, StatusActive)
	tracker := NewTracker(store, store, memDirectory{store})

	// Student 2 acts after student 1; student 3 never acts.
	_, err := tracker.Activate(studentID, courseID)
	require.NoError(t, err)
	_, err = tracker.Activate(2, courseID)
	require.NoError(t, err)

	summaries, err := tracker.Report(courseID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, uint(2), summaries[0].UserID)
	assert.Equal(t, studentID, summaries[1].UserID)
	assert.Equal(t, uint(3), summaries[2].UserID)
}

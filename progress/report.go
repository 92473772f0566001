package progress

import (
	"math"
	"sort"
	"time"
)

// StudentSummary is one row of the per-course progress report.
type StudentSummary struct {
	UserID                uint
	Status                string
	CompletedCount        int
	TotalTopics           int
	ProgressPercent       int
	CurrentTopicID        uint // 0 when the enrollment is completed
	CurrentTopicCompleted bool
	LastActivity          time.Time
}

// Report aggregates unlock/completion state for every non-revoked enrollment
// in the course. Read-only; never mutates the ledger. Rows are sorted by last
// activity, most recent first.
func (t *Tracker) Report(courseID uint) ([]StudentSummary, error) {
	enrollments, err := t.enrollments.ListByCourse(courseID)
	if err != nil {
		return nil, storeErr("list enrollments", err)
	}

	topics, err := t.listOrdered(courseID)
	if err != nil {
		return nil, err
	}

	summaries := make([]StudentSummary, 0, len(enrollments))
	for _, enrollment := range enrollments {
		if enrollment.Status == StatusRevoked {
			continue
		}

		records, err := t.ledger.ListByStudent(enrollment.UserID, courseID)
		if err != nil {
			return nil, storeErr("list progress", err)
		}

		byTopic := make(map[uint]Record, len(records))
		completed := 0
		lastActivity := enrollment.UpdatedAt
		for _, record := range records {
			byTopic[record.TopicID] = record
			if record.IsCompleted {
				completed++
			}
			if record.UpdatedAt.After(lastActivity) {
				lastActivity = record.UpdatedAt
			}
		}

		percent := 0
		if len(topics) > 0 {
			percent = int(math.Round(float64(completed) / float64(len(topics)) * 100))
		}

		summary := StudentSummary{
			UserID:          enrollment.UserID,
			Status:          enrollment.Status,
			CompletedCount:  completed,
			TotalTopics:     len(topics),
			ProgressPercent: percent,
			LastActivity:    lastActivity,
		}
		summary.CurrentTopicID, summary.CurrentTopicCompleted = currentTopic(enrollment, topics, byTopic)
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastActivity.After(summaries[j].LastActivity)
	})
	return summaries, nil
}

// currentTopic picks the topic a dashboard should show for the student.
// Policy, in order: a completed enrollment has no current topic; otherwise the
// first unlocked-but-incomplete topic is current; if every unlocked topic is
// completed the highest-order unlocked one stands in (the student is waiting
// on the next unlock); with nothing unlocked at all the course's first topic
// is shown as a placeholder. The two fallbacks are display heuristics carried
// over from the admin dashboard, not invariants.
func currentTopic(enrollment Enrollment, topics []Topic, byTopic map[uint]Record) (uint, bool) {
	if enrollment.Status == StatusCompleted || len(topics) == 0 {
		return 0, false
	}

	for _, topic := range topics {
		record, ok := byTopic[topic.ID]
		if ok && record.IsUnlocked && !record.IsCompleted {
			return topic.ID, false
		}
	}

	// All unlocked topics are completed: fall back to the highest-order
	// unlocked topic so the dashboard always has something to display.
	for i := len(topics) - 1; i >= 0; i-- {
		record, ok := byTopic[topics[i].ID]
		if ok && record.IsUnlocked {
			return topics[i].ID, record.IsCompleted
		}
	}

	return topics[0].ID, false
}

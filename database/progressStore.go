package database

import (
	"errors"

	courseModels "lms/models/course"
	"lms/progress"

	"gorm.io/gorm"
)

// TopicStore adapts the topics table to the unlock engine's catalog interface.
type TopicStore struct {
	Db *gorm.DB
}

func (s *TopicStore) ListTopics(courseID uint) ([]progress.Topic, error) {
	var topics []courseModels.Topic
	if err := s.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&topics).Error; err != nil {
		return nil, err
	}

	out := make([]progress.Topic, len(topics))
	for i, topic := range topics {
		out[i] = progress.Topic{ID: topic.ID, OrderIndex: topic.OrderIndex}
	}
	return out, nil
}

// ProgressStore adapts the progress table to the engine's ledger interface.
type ProgressStore struct {
	Db *gorm.DB
}

func (s *ProgressStore) Get(userID, courseID, topicID uint) (*progress.Record, error) {
	var row courseModels.Progress
	err := s.Db.Where("user_id = ? AND course_id = ? AND topic_id = ? AND is_deleted = ?",
		userID, courseID, topicID, false).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := toRecord(row)
	return &record, nil
}

// Upsert applies a merge-patch keyed on the unique (user, course, topic)
// tuple. Only the fields the patch carries are written, so unlocking a topic
// can never clobber an existing completion flag.
func (s *ProgressStore) Upsert(p progress.Patch) error {
	return s.Db.Transaction(func(tx *gorm.DB) error {
		var row courseModels.Progress
		err := tx.Where("user_id = ? AND course_id = ? AND topic_id = ? AND is_deleted = ?",
			p.UserID, p.CourseID, p.TopicID, false).First(&row).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = courseModels.Progress{
				UserID:   p.UserID,
				CourseID: p.CourseID,
				TopicID:  p.TopicID,
			}
			applyPatch(&row, p)
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if p.IsUnlocked != nil {
			updates["is_unlocked"] = *p.IsUnlocked
		}
		if p.IsCompleted != nil {
			updates["is_completed"] = *p.IsCompleted
		}
		if p.Source != "" {
			updates["completed_via"] = string(p.Source)
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&row).Updates(updates).Error
	})
}

func (s *ProgressStore) ListByStudent(userID, courseID uint) ([]progress.Record, error) {
	var rows []courseModels.Progress
	if err := s.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]progress.Record, len(rows))
	for i, row := range rows {
		out[i] = toRecord(row)
	}
	return out, nil
}

func applyPatch(row *courseModels.Progress, p progress.Patch) {
	if p.IsUnlocked != nil {
		row.IsUnlocked = *p.IsUnlocked
	}
	if p.IsCompleted != nil {
		row.IsCompleted = *p.IsCompleted
	}
	if p.Source != "" {
		row.CompletedVia = string(p.Source)
	}
}

func toRecord(row courseModels.Progress) progress.Record {
	return progress.Record{
		UserID:      row.UserID,
		CourseID:    row.CourseID,
		TopicID:     row.TopicID,
		IsUnlocked:  row.IsUnlocked,
		IsCompleted: row.IsCompleted,
		UpdatedAt:   row.UpdatedAt,
	}
}

// EnrollmentStore adapts the enrollments table to the engine's directory interface.
type EnrollmentStore struct {
	Db *gorm.DB
}

func (s *EnrollmentStore) Get(userID, courseID uint) (*progress.Enrollment, error) {
	var row courseModels.Enrollment
	err := s.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	enrollment := toEnrollment(row)
	return &enrollment, nil
}

func (s *EnrollmentStore) SetStatus(userID, courseID uint, status string) error {
	return s.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Update("status", status).Error
}

func (s *EnrollmentStore) ListByCourse(courseID uint) ([]progress.Enrollment, error) {
	var rows []courseModels.Enrollment
	if err := s.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]progress.Enrollment, len(rows))
	for i, row := range rows {
		out[i] = toEnrollment(row)
	}
	return out, nil
}

func toEnrollment(row courseModels.Enrollment) progress.Enrollment {
	return progress.Enrollment{
		UserID:    row.UserID,
		CourseID:  row.CourseID,
		Status:    row.Status,
		UpdatedAt: row.UpdatedAt,
	}
}

// NewTracker builds the unlock engine over the global database connection.
func NewTracker() *progress.Tracker {
	db := Database.Db
	return progress.NewTracker(
		&TopicStore{Db: db},
		&ProgressStore{Db: db},
		&EnrollmentStore{Db: db},
	)
}

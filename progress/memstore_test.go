package progress

import (
	"time"
)

// memStore is an in-memory implementation of all three collaborator
// interfaces, with a logical clock and fault injection for store failures.
type memStore struct {
	topics      map[uint][]Topic
	records     map[[3]uint]Record
	enrollments map[[2]uint]Enrollment

	upserts  int
	clock    time.Time
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		topics:      make(map[uint][]Topic),
		records:     make(map[[3]uint]Record),
		enrollments: make(map[[2]uint]Enrollment),
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memStore) addTopics(courseID uint, topics ...Topic) {
	s.topics[courseID] = append(s.topics[courseID], topics...)
}

func (s *memStore) addEnrollment(userID, courseID uint, status string) {
	s.enrollments[[2]uint{userID, courseID}] = Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		Status:    status,
		UpdatedAt: s.tick(),
	}
}

func (s *memStore) ListTopics(courseID uint) ([]Topic, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.topics[courseID], nil
}

func (s *memStore) Get(userID, courseID, topicID uint) (*Record, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	record, ok := s.records[[3]uint{userID, courseID, topicID}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memStore) Upsert(p Patch) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.upserts++

	key := [3]uint{p.UserID, p.CourseID, p.TopicID}
	record, ok := s.records[key]
	if !ok {
		record = Record{UserID: p.UserID, CourseID: p.CourseID, TopicID: p.TopicID}
	}
	if p.IsUnlocked != nil {
		record.IsUnlocked = *p.IsUnlocked
	}
	if p.IsCompleted != nil {
		record.IsCompleted = *p.IsCompleted
	}
	record.UpdatedAt = s.tick()
	s.records[key] = record
	return nil
}

func (s *memStore) ListByStudent(userID, courseID uint) ([]Record, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []Record
	for key, record := range s.records {
		if key[0] == userID && key[1] == courseID {
			out = append(out, record)
		}
	}
	return out, nil
}

// memDirectory adapts memStore to EnrollmentDirectory: the two-arg Get would
// otherwise collide with the Ledger three-arg Get under the same method name.
type memDirectory struct{ *memStore }

func (d memDirectory) Get(userID, courseID uint) (*Enrollment, error) {
	if d.failWith != nil {
		return nil, d.failWith
	}
	enrollment, ok := d.enrollments[[2]uint{userID, courseID}]
	if !ok {
		return nil, nil
	}
	return &enrollment, nil
}

func (s *memStore) SetStatus(userID, courseID uint, status string) error {
	if s.failWith != nil {
		return s.failWith
	}
	key := [2]uint{userID, courseID}
	enrollment, ok := s.enrollments[key]
	if !ok {
		enrollment = Enrollment{UserID: userID, CourseID: courseID}
	}
	enrollment.Status = status
	enrollment.UpdatedAt = s.tick()
	s.enrollments[key] = enrollment
	return nil
}

func (s *memStore) ListByCourse(courseID uint) ([]Enrollment, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []Enrollment
	for key, enrollment := range s.enrollments {
		if key[1] == courseID {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

// unlockedPrefixLen returns how many topics of the course order are unlocked
// for the student, verifying along the way that the unlocked set is a
// contiguous prefix (no gaps).
func (s *memStore) unlockedPrefixLen(userID, courseID uint) (int, bool) {
	topics := s.topics[courseID]
	n := 0
	seenLocked := false
	for _, topic := range topics {
		record, ok := s.records[[3]uint{userID, courseID, topic.ID}]
		unlocked := ok && record.IsUnlocked
		if unlocked {
			if seenLocked {
				return n, false // gap
			}
			n++
		} else {
			seenLocked = true
		}
	}
	return n, true
}

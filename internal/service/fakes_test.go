package service

import (
	"context"
	"time"

	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// In-memory fakes for the store interfaces. Each struct uses function fields
// so a test can override exactly the calls it cares about; unset fields fall
// back to a harmless default.

type fakeStudentLookup struct {
	users map[int]*model.User
}

func (f *fakeStudentLookup) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeClassResolver struct {
	enrollment *model.Enrollment
	err        error
}

func (f *fakeClassResolver) CurrentClassOf(ctx context.Context, studentID int) (*model.Enrollment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.enrollment, nil
}

type fakeEnrollmentStore struct {
	current   map[int]*model.Enrollment
	promoted  []int
	pastAdded []int
	all       []model.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{current: make(map[int]*model.Enrollment)}
}

func (f *fakeEnrollmentStore) GetCurrent(ctx context.Context, studentID int) (*model.Enrollment, error) {
	e, ok := f.current[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentStore) History(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.all {
		if e.StudentID == studentID && !e.IsCurrent {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.all {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) Promote(ctx context.Context, studentID, classLevelID int) error {
	if old, ok := f.current[studentID]; ok && old.ClassLevelID != classLevelID {
		old.IsCurrent = false
	}
	e := &model.Enrollment{StudentID: studentID, ClassLevelID: classLevelID, IsCurrent: true}
	f.current[studentID] = e
	f.promoted = append(f.promoted, classLevelID)
	f.all = append(f.all, *e)
	return nil
}

func (f *fakeEnrollmentStore) AddPast(ctx context.Context, studentID, classLevelID int) error {
	f.pastAdded = append(f.pastAdded, classLevelID)
	f.all = append(f.all, model.Enrollment{StudentID: studentID, ClassLevelID: classLevelID})
	return nil
}

type fakeAttendanceStore struct {
	insertErr    error
	upserted     []model.AttendanceRecord
	inserted     []model.AttendanceRecord
	ignoredDup   bool
	records      []model.AttendanceRecord
	presentCount int
}

func (f *fakeAttendanceStore) Insert(ctx context.Context, rec *model.AttendanceRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *rec)
	return nil
}

func (f *fakeAttendanceStore) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	f.upserted = append(f.upserted, *rec)
	return nil
}

func (f *fakeAttendanceStore) InsertIgnoreDuplicate(ctx context.Context, rec *model.AttendanceRecord) (bool, error) {
	if f.ignoredDup {
		return false, nil
	}
	f.inserted = append(f.inserted, *rec)
	return true, nil
}

func (f *fakeAttendanceStore) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceStore) CountPresent(ctx context.Context, studentID, classLevelID int) (int, error) {
	return f.presentCount, nil
}

func (f *fakeAttendanceStore) ClassRoster(ctx context.Context, classLevelID int, date time.Time) ([]model.ClassAttendanceRow, error) {
	return nil, nil
}

type fakeDeviceLookup struct {
	devices map[string]*model.AuthorizedDevice
}

func (f *fakeDeviceLookup) GetByDeviceID(ctx context.Context, deviceID string) (*model.AuthorizedDevice, error) {
	d, ok := f.devices[deviceID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

type fakeAssignmentStore struct {
	assignments   map[int]*model.Assignment
	submissions   map[int]*model.Submission
	insertSubErr  error
	countByClass  int
	statSubmitted int
	statMarksSum  float64
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{
		assignments: make(map[int]*model.Assignment),
		submissions: make(map[int]*model.Submission),
	}
}

func (f *fakeAssignmentStore) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) ListByClass(ctx context.Context, classLevelID int) ([]model.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentStore) Create(ctx context.Context, a *model.Assignment) error {
	a.ID = len(f.assignments) + 1
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentStore) Update(ctx context.Context, a *model.Assignment) error { return nil }
func (f *fakeAssignmentStore) Delete(ctx context.Context, id int) error              { return nil }

func (f *fakeAssignmentStore) CountByClass(ctx context.Context, classLevelID int) (int, error) {
	return f.countByClass, nil
}

func (f *fakeAssignmentStore) InsertSubmission(ctx context.Context, s *model.Submission) error {
	if f.insertSubErr != nil {
		return f.insertSubErr
	}
	s.ID = len(f.submissions) + 1
	f.submissions[s.ID] = s
	return nil
}

func (f *fakeAssignmentStore) GetSubmission(ctx context.Context, id int) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeAssignmentStore) UpdateSubmission(ctx context.Context, s *model.Submission) error {
	if _, ok := f.submissions[s.ID]; !ok {
		return repository.ErrNotFound
	}
	f.submissions[s.ID] = s
	return nil
}

func (f *fakeAssignmentStore) SubmissionStats(ctx context.Context, studentID, classLevelID int) (int, float64, error) {
	return f.statSubmitted, f.statMarksSum, nil
}

type fakeParticipationStore struct {
	insertErr error
	records   []model.ParticipationRecord
	average   float64
	updated   map[int]float64
}

func (f *fakeParticipationStore) Insert(ctx context.Context, p *model.ParticipationRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	p.ID = len(f.records) + 1
	f.records = append(f.records, *p)
	return nil
}

func (f *fakeParticipationStore) UpdateMark(ctx context.Context, id int, mark float64) error {
	if id > len(f.records) {
		return repository.ErrNotFound
	}
	if f.updated == nil {
		f.updated = make(map[int]float64)
	}
	f.updated[id] = mark
	return nil
}

func (f *fakeParticipationStore) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ParticipationRecord, error) {
	return f.records, nil
}

func (f *fakeParticipationStore) Average(ctx context.Context, studentID, classLevelID int) (float64, error) {
	return f.average, nil
}

type fakeExamStore struct {
	types     []model.ExamType
	records   map[int]*model.ExamRecord
	inCurrent []model.ExamRecord
	inPast    []model.ExamRecord
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{records: make(map[int]*model.ExamRecord)}
}

func (f *fakeExamStore) ListTypes(ctx context.Context) ([]model.ExamType, error) {
	return f.types, nil
}

func (f *fakeExamStore) CreateType(ctx context.Context, t *model.ExamType) error {
	t.ID = len(f.types) + 1
	f.types = append(f.types, *t)
	return nil
}

func (f *fakeExamStore) UpdateType(ctx context.Context, t *model.ExamType) error { return nil }
func (f *fakeExamStore) DeleteType(ctx context.Context, id int) error            { return nil }

func (f *fakeExamStore) InsertRecord(ctx context.Context, rec *model.ExamRecord) error {
	rec.ID = len(f.records) + 1
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeExamStore) GetRecord(ctx context.Context, id int) (*model.ExamRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeExamStore) UpdateRecord(ctx context.Context, rec *model.ExamRecord) error {
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeExamStore) DeleteRecord(ctx context.Context, id int) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeExamStore) ListByStudent(ctx context.Context, studentID int) ([]model.ExamRecord, error) {
	return append(append([]model.ExamRecord{}, f.inPast...), f.inCurrent...), nil
}

func (f *fakeExamStore) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error) {
	return f.inCurrent, nil
}

func (f *fakeExamStore) ListByStudentExcludingClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error) {
	return f.inPast, nil
}

type fixedMarkPolicy int

func (p fixedMarkPolicy) AssignmentFullMarks(ctx context.Context) int { return int(p) }

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// AttendanceStore is the persistence surface the attendance ledger needs.
// *repository.AttendanceRepository satisfies it.
type AttendanceStore interface {
	Insert(ctx context.Context, rec *model.AttendanceRecord) error
	Upsert(ctx context.Context, rec *model.AttendanceRecord) error
	InsertIgnoreDuplicate(ctx context.Context, rec *model.AttendanceRecord) (bool, error)
	ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.AttendanceRecord, error)
	CountPresent(ctx context.Context, studentID, classLevelID int) (int, error)
	ClassRoster(ctx context.Context, classLevelID int, date time.Time) ([]model.ClassAttendanceRow, error)
}

// DeviceLookup resolves attendance hardware tokens.
// *repository.DeviceRepository satisfies it.
type DeviceLookup interface {
	GetByDeviceID(ctx context.Context, deviceID string) (*model.AuthorizedDevice, error)
}

// CurrentClassResolver is the slice of the enrollment service the ledgers
// use to resolve a student's active class.
type CurrentClassResolver interface {
	CurrentClassOf(ctx context.Context, studentID int) (*model.Enrollment, error)
}

// AttendanceService records daily presence. The three write paths handle
// duplicates differently on purpose: a student checking in twice is an error,
// a teacher setting a status twice is a correction, and a hardware retry is
// routine and must succeed quietly.
type AttendanceService struct {
	records     AttendanceStore
	devices     DeviceLookup
	enrollments CurrentClassResolver
	log         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records AttendanceStore, devices DeviceLookup, enrollments CurrentClassResolver, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		records:     records,
		devices:     devices,
		enrollments: enrollments,
		log:         log.With().Str("component", "attendance_service").Logger(),
	}
}

// MarkSelf records the student as present today. A record already existing
// for the day is a hard conflict: self check-in is create-once.
func (s *AttendanceService) MarkSelf(ctx context.Context, studentID int, date time.Time) (*model.AttendanceRecord, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		StudentID:    studentID,
		ClassLevelID: enrollment.ClassLevelID,
		Date:         dateOnly(date),
		Status:       model.AttendancePresent,
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}
	return rec, nil
}

// MarkWithStatus records an explicit outcome for the student's day,
// overwriting any earlier outcome. Unlike MarkSelf this path is an idempotent
// update: it exists for teachers correcting the ledger.
func (s *AttendanceService) MarkWithStatus(ctx context.Context, studentID int, status model.AttendanceStatus, date time.Time) (*model.AttendanceRecord, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		StudentID:    studentID,
		ClassLevelID: enrollment.ClassLevelID,
		Date:         dateOnly(date),
		Status:       status,
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// MarkByDevice records the student as present on behalf of an authorized
// device. Re-marking an already marked day succeeds without effect: the
// hardware retries on flaky networks and must not see conflicts.
func (s *AttendanceService) MarkByDevice(ctx context.Context, deviceID string, studentID int, date time.Time) error {
	device, err := s.devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDeviceUnknown
		}
		return err
	}
	if !device.IsActive {
		return ErrDeviceInactive
	}

	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		return err
	}

	rec := &model.AttendanceRecord{
		StudentID:    studentID,
		ClassLevelID: enrollment.ClassLevelID,
		Date:         dateOnly(date),
		Status:       model.AttendancePresent,
	}
	created, err := s.records.InsertIgnoreDuplicate(ctx, rec)
	if err != nil {
		return err
	}
	if !created {
		s.log.Debug().
			Int("student_id", studentID).
			Str("device_id", device.DeviceID).
			Msg("device re-marked an existing attendance day")
	}
	return nil
}

// RecordsFor returns the student's attendance records for one class, ordered
// by date.
func (s *AttendanceService) RecordsFor(ctx context.Context, studentID, classLevelID int) ([]model.AttendanceRecord, error) {
	return s.records.ListByStudentClass(ctx, studentID, classLevelID)
}

// CurrentClassRecords returns the student's records for their current class.
func (s *AttendanceService) CurrentClassRecords(ctx context.Context, studentID int) ([]model.AttendanceRecord, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.records.ListByStudentClass(ctx, studentID, enrollment.ClassLevelID)
}

// PresentCount counts the student's present days in one class.
func (s *AttendanceService) PresentCount(ctx context.Context, studentID, classLevelID int) (int, error) {
	return s.records.CountPresent(ctx, studentID, classLevelID)
}

// ClassRoster returns the per-student outcome of one class for one day.
func (s *AttendanceService) ClassRoster(ctx context.Context, classLevelID int, date time.Time) ([]model.ClassAttendanceRow, error) {
	return s.records.ClassRoster(ctx, classLevelID, dateOnly(date))
}

// dateOnly truncates a timestamp to its UTC calendar day, matching the DATE
// column the uniqueness constraint is declared over.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package db

import (
	"context"
	"errors"
	"time"

	"github.com/frsm-ph/shiftops/pkg/core/model"
)

// ErrNotFound is returned by stores when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// Store defines the database operations the engine issues. Inside InTx the
// receiver is scoped to the transaction; every statement is parameterized.
type Store interface {
	// Shifts
	GetShiftForUpdate(ctx context.Context, shiftID int64) (*Shift, error)
	UpdateShiftAttendance(ctx context.Context, upd ShiftAttendanceUpdate) error
	ReassignShift(ctx context.Context, r ShiftReassignment) error
	ApplyShiftScheduleChange(ctx context.Context, chg ShiftScheduleChange) error
	SetShiftConfirmationStatus(ctx context.Context, shiftID int64, status model.ConfirmationStatus) error
	ConfirmShift(ctx context.Context, shiftID, volunteerID int64) error
	DeclineShift(ctx context.Context, shiftID, volunteerID int64, reason string) error
	FlagShiftChangeRequested(ctx context.Context, shiftID, volunteerID int64, details string) error

	// Attendance logs
	InsertAttendanceLog(ctx context.Context, log *AttendanceLog) error
	CloseAttendanceLog(ctx context.Context, out AttendanceLogCheckOut) error

	// Change requests
	GetChangeRequestForUpdate(ctx context.Context, requestID int64) (*ChangeRequestDetail, error)
	UpdateChangeRequestStatus(ctx context.Context, requestID int64, status model.RequestStatus, adminNotes *string, reviewerID int64) error
	InsertChangeRequest(ctx context.Context, req *ShiftChangeRequest) error

	// Confirmations
	InsertShiftConfirmation(ctx context.Context, c *ShiftConfirmation) error
	UpsertShiftConfirmation(ctx context.Context, shiftID, volunteerID int64, status model.ConfirmationStatus, note string) error
	DeleteShiftConfirmation(ctx context.Context, shiftID, volunteerID int64) error

	// Volunteers
	GetVolunteer(ctx context.Context, volunteerID int64) (*Volunteer, error)

	// Notifications
	InsertNotification(ctx context.Context, n *Notification) error

	// Replacement pool
	ListReplacementCandidates(ctx context.Context, shiftID, excludeVolunteerID int64) ([]ReplacementCandidate, error)

	// Read-only reporting
	ListShiftsForDate(ctx context.Context, date time.Time) ([]ShiftDetail, error)
	ListUpcomingShifts(ctx context.Context, from, to time.Time) ([]ShiftDetail, error)
	ListChangeRequests(ctx context.Context, f ChangeRequestFilter) ([]ChangeRequestRow, error)
	ListDutyAssignments(ctx context.Context, f DutyAssignmentFilter, page, perPage int) (*DutyAssignmentPage, error)
	GetRequestStatistics(ctx context.Context) (*RequestStatistics, error)
}

// Conn is a Store that can also open transactions. The callback receives a
// Store scoped to the transaction; returning an error rolls everything back.
type Conn interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}

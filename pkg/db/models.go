package db

import (
	"time"

	"github.com/frsm-ph/shiftops/pkg/core/model"
)

// Shift is one scheduled duty period for exactly one assignee, either a
// volunteer or a staff user (ShiftFor discriminates).
type Shift struct {
	ID                 int64
	ShiftDate          time.Time
	StartTime          string // "15:04"
	EndTime            string
	Location           string
	ShiftFor           string
	UnitID             *int64
	VolunteerID        *int64
	UserID             *int64
	DutyAssignmentID   *int64
	Status             model.ShiftStatus
	ConfirmationStatus model.ConfirmationStatus
	AttendanceStatus   model.AttendanceStatus
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	AttendanceNotes    string
	ConfirmedAt        *time.Time
	DeclinedReason     *string
	ChangeRequestNotes *string
	Notes              string

	// Populated by GetShiftForUpdate from the volunteer row, when the
	// assignee is a volunteer with a linked user account.
	VolunteerUserID *int64
}

// Volunteer is a roster member eligible for shifts
type Volunteer struct {
	ID                      int64
	UserID                  *int64
	FirstName               string
	LastName                string
	ContactNumber           string
	Email                   string
	Status                  string
	VolunteerStatus         string
	AvailableDays           string
	AvailableHours          string
	SkillsBasicFirefighting bool
	SkillsFirstAidCPR       bool
	SkillsSearchRescue      bool
}

// AttendanceLog is an append-mostly record of an attendance event.
// Rows are inserted on check-in/absent/excused and closed on check-out,
// never deleted.
type AttendanceLog struct {
	ID               int64
	ShiftID          int64
	VolunteerID      *int64
	UserID           *int64
	ShiftDate        time.Time
	CheckIn          *time.Time
	CheckOut         *time.Time
	TotalHours       *float64
	AttendanceStatus model.LogStatus
	Notes            string
	CreatedAt        time.Time
}

// ShiftChangeRequest is a volunteer's request to alter a shift
type ShiftChangeRequest struct {
	ID                  int64
	ShiftID             int64
	VolunteerID         int64
	RequestType         model.RequestType
	RequestDetails      string
	ProposedDate        *time.Time
	ProposedStartTime   *string
	ProposedEndTime     *string
	SwapWithVolunteerID *int64
	Status              model.RequestStatus
	AdminNotes          *string
	RequestedAt         time.Time
	ReviewedAt          *time.Time
	ReviewedBy          *int64
}

// ChangeRequestDetail is a request joined with its shift and the
// requesting volunteer's user account, as loaded for review.
type ChangeRequestDetail struct {
	ShiftChangeRequest
	Shift           Shift
	VolunteerUserID *int64
}

// ShiftConfirmation is a volunteer's acknowledgement record for a shift,
// unique per (shift, volunteer).
type ShiftConfirmation struct {
	ID            int64
	ShiftID       int64
	VolunteerID   int64
	Status        model.ConfirmationStatus
	ResponseNotes string
	RespondedAt   *time.Time
}

// Notification is a one-way message to a user about a workflow event.
// Created, never mutated; delivery belongs to the notification service.
type Notification struct {
	ID      string // uuid
	UserID  int64
	Type    string
	Title   string
	Message string
}

// ShiftAttendanceUpdate carries the field set one attendance action writes
// to the shift row. Nil pointers leave the column untouched.
type ShiftAttendanceUpdate struct {
	ShiftID          int64
	AttendanceStatus model.AttendanceStatus
	Status           model.ShiftStatus
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
}

// AttendanceLogCheckOut closes the newest open log row for a shift+assignee
type AttendanceLogCheckOut struct {
	ShiftID     int64
	VolunteerID *int64
	CheckOut    time.Time
	TotalHours  float64
	Note        string
}

// ShiftReassignment moves a shift to a new assignee after an approved swap
type ShiftReassignment struct {
	ShiftID     int64
	VolunteerID int64
	UserID      *int64
}

// ShiftScheduleChange applies the approved proposed fields of a time/date
// change request. Nil fields are left as they are.
type ShiftScheduleChange struct {
	ShiftID   int64
	Date      *time.Time
	StartTime *string
	EndTime   *string
}

// ReplacementCandidate is one row of the substitute pool for a shift, with
// the same-day conflict and reliability figures computed in the store.
type ReplacementCandidate struct {
	Volunteer
	UnitName            *string
	UnitCode            *string
	AssignmentDate      *time.Time
	SameDayShifts       int
	ConfirmedLast30Days int
}

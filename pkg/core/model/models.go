package model

// ShiftStatus is the overall lifecycle status of a shift
type ShiftStatus string

const (
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
	ShiftConfirmed  ShiftStatus = "confirmed"
	ShiftAbsent     ShiftStatus = "absent"
	ShiftExcused    ShiftStatus = "excused"
)

// ConfirmationStatus tracks whether the assignee has acknowledged the shift
type ConfirmationStatus string

const (
	ConfirmationPending         ConfirmationStatus = "pending"
	ConfirmationConfirmed       ConfirmationStatus = "confirmed"
	ConfirmationDeclined        ConfirmationStatus = "declined"
	ConfirmationChangeRequested ConfirmationStatus = "change_requested"
)

// AttendanceStatus is the attendance state of a shift.
// Transitions: pending -> checked_in -> checked_out, or pending -> absent,
// or pending -> excused. checked_out, absent and excused are terminal.
type AttendanceStatus string

const (
	AttendancePending    AttendanceStatus = "pending"
	AttendanceCheckedIn  AttendanceStatus = "checked_in"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
	AttendanceAbsent     AttendanceStatus = "absent"
	AttendanceExcused    AttendanceStatus = "excused"
)

// AttendanceAction is an admin-issued attendance transition
type AttendanceAction string

const (
	ActionCheckIn     AttendanceAction = "check_in"
	ActionCheckOut    AttendanceAction = "check_out"
	ActionMarkAbsent  AttendanceAction = "mark_absent"
	ActionMarkExcused AttendanceAction = "mark_excused"
)

func (a AttendanceAction) IsValid() bool {
	switch a {
	case ActionCheckIn, ActionCheckOut, ActionMarkAbsent, ActionMarkExcused:
		return true
	}
	return false
}

// LogStatus is the status recorded on an attendance log row
type LogStatus string

const (
	LogPresent LogStatus = "present"
	LogAbsent  LogStatus = "absent"
	LogExcused LogStatus = "excused"
)

// RequestType classifies a shift change request
type RequestType string

const (
	RequestTimeChange RequestType = "time_change"
	RequestDateChange RequestType = "date_change"
	RequestSwap       RequestType = "swap"
	RequestOther      RequestType = "other"
)

func (t RequestType) IsValid() bool {
	switch t {
	case RequestTimeChange, RequestDateChange, RequestSwap, RequestOther:
		return true
	}
	return false
}

// RequestStatus is the review state of a shift change request.
// pending is the only non-terminal state.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// Resolution statuses an admin may apply to a pending request
func (s RequestStatus) IsResolution() bool {
	return s == RequestApproved || s == RequestRejected || s == RequestCancelled
}

// VolunteerStatus values that make a volunteer eligible for replacement duty
const (
	VolunteerApproved     = "approved"
	VolunteerActive       = "Active"
	VolunteerNewVolunteer = "New Volunteer"
)

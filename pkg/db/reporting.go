package db

import (
	"time"

	"github.com/frsm-ph/shiftops/pkg/core/model"
)

// ShiftDetail is a shift joined with its volunteer, unit and duty
// assignment for the read-only listing views.
type ShiftDetail struct {
	Shift
	VolunteerFirstName string
	VolunteerLastName  string
	VolunteerContact   string
	VolunteerEmail     string
	VolunteerStatus    string
	UnitName           *string
	UnitCode           *string
	DutyType           *string
	DutyDescription    *string
	DutyPriority       *string
}

// ChangeRequestRow is one row of the admin review listing
type ChangeRequestRow struct {
	ShiftChangeRequest
	ShiftDate          time.Time
	OriginalStartTime  string
	OriginalEndTime    string
	ShiftLocation      string
	ShiftStatus        model.ShiftStatus
	ConfirmationStatus model.ConfirmationStatus
	VolunteerFirstName string
	VolunteerLastName  string
	SwapFirstName      *string
	SwapLastName       *string
	ReviewerFirstName  *string
	ReviewerLastName   *string
}

// ChangeRequestFilter narrows the change request listing
type ChangeRequestFilter struct {
	Status      model.RequestStatus // empty for all
	DateFrom    *time.Time
	DateTo      *time.Time
	VolunteerID *int64
}

// DutyAssignment is a duty definition attached to a shift
type DutyAssignment struct {
	ID                int64
	ShiftID           *int64
	DutyType          string
	DutyDescription   string
	Priority          string
	RequiredEquipment string
	RequiredTraining  string
	Notes             string
	CreatedAt         time.Time
}

// DutyAssignmentFilter narrows the paginated duty listing
type DutyAssignmentFilter struct {
	ShiftID  *int64
	DutyType string
}

// DutyAssignmentPage is one page of duty assignments plus the total count
// from the separate count query.
type DutyAssignmentPage struct {
	Duties     []DutyAssignment
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// RequestStatistics aggregates change requests over the trailing 30 days
type RequestStatistics struct {
	TotalRequests      int
	PendingRequests    int
	ApprovedRequests   int
	RejectedRequests   int
	CancelledRequests  int
	UniqueVolunteers   int
	AvgProcessingHours float64
}

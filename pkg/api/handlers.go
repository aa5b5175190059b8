package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frsm-ph/shiftops/pkg/core/attendance"
	"github.com/frsm-ph/shiftops/pkg/core/changerequest"
	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/core/replacement"
	"github.com/frsm-ph/shiftops/pkg/core/reporting"
	"github.com/frsm-ph/shiftops/pkg/core/shiftresponse"
	"github.com/frsm-ph/shiftops/pkg/db"
)

const dateLayout = "2006-01-02"

type attendanceRequest struct {
	Action string `json:"action" validate:"required,oneof=check_in check_out mark_absent mark_excused"`
	Notes  string `json:"notes"`
}

type attendanceResponse struct {
	ShiftID          int64    `json:"shift_id"`
	Action           string   `json:"action"`
	AttendanceStatus string   `json:"attendance_status"`
	TotalHours       *float64 `json:"total_hours,omitempty"`
}

func (h *Handler) applyAttendanceAction(w http.ResponseWriter, r *http.Request) {
	shiftID, err := pathID(r, "shiftID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var req attendanceRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := attendance.ApplyAttendanceAction(r.Context(), h.database, h.logger,
		shiftID, model.AttendanceAction(req.Action), req.Notes)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attendanceResponse{
		ShiftID:          result.ShiftID,
		Action:           string(result.Action),
		AttendanceStatus: string(result.AttendanceStatus),
		TotalHours:       result.TotalHours,
	})
}

type resolutionRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected cancelled"`
	ReviewerID int64  `json:"reviewer_id" validate:"required"`
	AdminNotes string `json:"admin_notes"`
}

func (h *Handler) resolveChangeRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req resolutionRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = changerequest.ResolveChangeRequest(r.Context(), h.database, h.logger, changerequest.Resolution{
		RequestID:  requestID,
		NewStatus:  model.RequestStatus(req.Status),
		ReviewerID: req.ReviewerID,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"request_id": strconv.FormatInt(requestID, 10),
		"status":     req.Status,
	})
}

type changeProposalPayload struct {
	Type                string  `json:"type" validate:"required,oneof=time_change date_change swap other"`
	Details             string  `json:"details" validate:"required"`
	ProposedDate        *string `json:"proposed_date"`
	ProposedStartTime   *string `json:"proposed_start_time"`
	ProposedEndTime     *string `json:"proposed_end_time"`
	SwapWithVolunteerID *int64  `json:"swap_with_volunteer_id"`
}

type shiftResponseRequest struct {
	VolunteerID int64                  `json:"volunteer_id" validate:"required"`
	Response    string                 `json:"response" validate:"required,oneof=confirm decline request_change"`
	Reason      string                 `json:"reason"`
	Change      *changeProposalPayload `json:"change"`
}

func (h *Handler) respondToShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := pathID(r, "shiftID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var req shiftResponseRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var proposal *shiftresponse.ChangeProposal
	if req.Change != nil {
		proposal = &shiftresponse.ChangeProposal{
			Type:                model.RequestType(req.Change.Type),
			Details:             req.Change.Details,
			ProposedStartTime:   req.Change.ProposedStartTime,
			ProposedEndTime:     req.Change.ProposedEndTime,
			SwapWithVolunteerID: req.Change.SwapWithVolunteerID,
		}
		if req.Change.ProposedDate != nil {
			d, err := time.Parse(dateLayout, *req.Change.ProposedDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid proposed_date")
				return
			}
			proposal.ProposedDate = &d
		}
	}

	err = shiftresponse.Respond(r.Context(), h.database, h.logger,
		shiftID, req.VolunteerID, shiftresponse.Response(req.Response), req.Reason, proposal)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": req.Response})
}

func (h *Handler) findReplacements(w http.ResponseWriter, r *http.Request) {
	shiftID, err := pathID(r, "shiftID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var exclude int64
	if v := r.URL.Query().Get("exclude_volunteer_id"); v != "" {
		exclude, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exclude_volunteer_id")
			return
		}
	}

	candidates, err := replacement.FindReplacements(r.Context(), h.database, h.logger, shiftID, exclude)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (h *Handler) listShiftsForDate(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = parsed
	}

	shifts, summary, err := reporting.ShiftsForDate(r.Context(), h.database, h.logger, date)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"shifts":  shifts,
		"summary": summary,
	})
}

func (h *Handler) listUpcomingShifts(w http.ResponseWriter, r *http.Request) {
	days := h.upcomingDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = parsed
	}

	shifts, err := reporting.UpcomingShifts(r.Context(), h.database, h.logger, days)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"shifts": shifts})
}

func (h *Handler) listChangeRequests(w http.ResponseWriter, r *http.Request) {
	var filter db.ChangeRequestFilter

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := model.RequestStatus(v)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = status
	}
	if v := q.Get("date_from"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date_from")
			return
		}
		filter.DateFrom = &d
	}
	if v := q.Get("date_to"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date_to")
			return
		}
		filter.DateTo = &d
	}
	if v := q.Get("volunteer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid volunteer_id")
			return
		}
		filter.VolunteerID = &id
	}

	requests, err := reporting.ChangeRequests(r.Context(), h.database, h.logger, filter)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *Handler) requestStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := reporting.RequestStatistics(r.Context(), h.database, h.logger)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) listDutyAssignments(w http.ResponseWriter, r *http.Request) {
	var filter db.DutyAssignmentFilter
	page := 1

	q := r.URL.Query()
	if v := q.Get("shift_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid shift_id")
			return
		}
		filter.ShiftID = &id
	}
	if v := q.Get("duty_type"); v != "" {
		filter.DutyType = v
	}
	if v := q.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = parsed
	}

	result, err := reporting.DutyAssignments(r.Context(), h.database, h.logger, filter, page)
	if err != nil {
		h.renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

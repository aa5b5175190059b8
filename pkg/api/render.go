package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/db"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// renderError maps service errors onto HTTP statuses: missing records are
// 404, invalid transitions 409, unusable references 422, bad payloads 400
// and everything else 500.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	var stateErr *model.InvalidStateError
	var refErr *model.ReferentialError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.As(err, &stateErr):
		writeError(w, http.StatusConflict, stateErr.Error())
	case errors.As(err, &refErr):
		writeError(w, http.StatusUnprocessableEntity, refErr.Error())
	case errors.As(err, &validationErrs):
		writeError(w, http.StatusBadRequest, validationErrs.Error())
	default:
		h.logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into v and runs struct validation
func (h *Handler) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

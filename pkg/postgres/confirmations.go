package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// InsertShiftConfirmation records a fresh acknowledgement row
func (st *Store) InsertShiftConfirmation(ctx context.Context, c *db.ShiftConfirmation) error {
	query, args, err := psql.
		Insert("shift_confirmations").
		Columns("shift_id", "volunteer_id", "status", "response_notes", "responded_at").
		Values(c.ShiftID, c.VolunteerID, c.Status, c.ResponseNotes, c.RespondedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirmation insert: %w", err)
	}

	if err := st.q.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to insert shift confirmation: %w", err)
	}
	return nil
}

// UpsertShiftConfirmation inserts or updates the acknowledgement row keyed
// by (shift, volunteer), appending the note on conflict.
func (st *Store) UpsertShiftConfirmation(ctx context.Context, shiftID, volunteerID int64, status model.ConfirmationStatus, note string) error {
	query, args, err := psql.
		Insert("shift_confirmations").
		Columns("shift_id", "volunteer_id", "status", "response_notes", "responded_at").
		Values(shiftID, volunteerID, status, note, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (shift_id, volunteer_id) DO UPDATE SET
			status = EXCLUDED.status,
			response_notes = shift_confirmations.response_notes || ' ' || EXCLUDED.response_notes,
			responded_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirmation upsert: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert shift confirmation: %w", err)
	}
	return nil
}

// DeleteShiftConfirmation removes the displaced volunteer's acknowledgement
// after an approved swap. Deleting a missing row is not an error.
func (st *Store) DeleteShiftConfirmation(ctx context.Context, shiftID, volunteerID int64) error {
	query, args, err := psql.
		Delete("shift_confirmations").
		Where(sq.Eq{"shift_id": shiftID, "volunteer_id": volunteerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirmation delete: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete shift confirmation: %w", err)
	}
	return nil
}

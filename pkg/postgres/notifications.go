package postgres

import (
	"context"
	"fmt"

	"github.com/frsm-ph/shiftops/pkg/db"
)

// InsertNotification records a workflow notification for later delivery
func (st *Store) InsertNotification(ctx context.Context, n *db.Notification) error {
	query, args, err := psql.
		Insert("notifications").
		Columns("id", "user_id", "type", "title", "message").
		Values(n.ID, n.UserID, n.Type, n.Title, n.Message).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build notification insert: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

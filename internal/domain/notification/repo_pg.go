package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macena-health/care-api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const notificationCols = `id, kind, title, message, target_user_id, measurement_id,
	payload, read, created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.Kind, &n.Title, &n.Message, &n.TargetUserID,
		&n.MeasurementID, &n.Payload, &n.Read, &n.CreatedAt)
	return &n, err
}

// Create relies on the partial unique index over measurement_id: a retried
// clinical alert for the same measurement conflicts and inserts nothing.
func (r *repoPG) Create(ctx context.Context, n *Notification) (bool, error) {
	n.ID = uuid.New()
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO notifications (id, kind, title, message, target_user_id, measurement_id, payload)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (measurement_id) WHERE measurement_id IS NOT NULL DO NOTHING`,
		n.ID, n.Kind, n.Title, n.Message, n.TargetUserID, n.MeasurementID, n.Payload)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return scanNotification(r.conn(ctx).QueryRow(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE id = $1`, id))
}

const visibleWhere = `WHERE (target_user_id = $1 OR (target_user_id IS NULL AND $2))`

func (r *repoPG) ListVisible(ctx context.Context, userID string, privileged bool, limit, offset int) ([]*Notification, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications `+visibleWhere, userID, privileged).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+notificationCols+` FROM notifications `+visibleWhere+`
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		userID, privileged, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, nil
}

func (r *repoPG) MarkRead(ctx context.Context, id uuid.UUID, userID string, privileged bool) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $3 AND (target_user_id = $1 OR (target_user_id IS NULL AND $2))`,
		userID, privileged, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *repoPG) MarkAllRead(ctx context.Context, userID string, privileged bool) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE notifications SET read = TRUE
		`+visibleWhere+` AND read = FALSE`, userID, privileged)
	return err
}

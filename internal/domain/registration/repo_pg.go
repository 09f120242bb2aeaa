package registration

import (
	"context"

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

const registrationCols = `id, user_id, name, email, status, granted_role,
	decided_by, decided_at, created_at`

func scanRegistration(row pgx.Row) (*PendingRegistration, error) {
	var p PendingRegistration
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Status, &p.GrantedRole,
		&p.DecidedBy, &p.DecidedAt, &p.CreatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *PendingRegistration) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pending_registrations (id, user_id, name, email, status)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.UserID, p.Name, p.Email, p.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*PendingRegistration, error) {
	return scanRegistration(r.conn(ctx).QueryRow(ctx,
		`SELECT `+registrationCols+` FROM pending_registrations WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, status Status, limit, offset int) ([]*PendingRegistration, int, error) {
	where := `WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM pending_registrations `+where, string(status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+registrationCols+` FROM pending_registrations `+where+`
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		string(status), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*PendingRegistration
	for rows.Next() {
		p, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) UpdateDecision(ctx context.Context, p *PendingRegistration) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pending_registrations
		SET status=$2, granted_role=$3, decided_by=$4, decided_at=$5
		WHERE id = $1`,
		p.ID, p.Status, p.GrantedRole, p.DecidedBy, p.DecidedAt)
	return err
}

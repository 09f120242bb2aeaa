package report

import (
	"context"
	"encoding/json"

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

const reportCols = `id, title, patient_id, subtype, period_start, period_end, notes,
	payload, created_by, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	var payload []byte
	err := row.Scan(&rep.ID, &rep.Title, &rep.PatientID, &rep.Subtype, &rep.PeriodStart,
		&rep.PeriodEnd, &rep.Notes, &payload, &rep.CreatedBy, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &rep.Payload); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	payload, err := json.Marshal(rep.Payload)
	if err != nil {
		return err
	}
	rep.ID = uuid.New()
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO reports (id, title, patient_id, subtype, period_start, period_end,
			notes, payload, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rep.ID, rep.Title, rep.PatientID, rep.Subtype, rep.PeriodStart, rep.PeriodEnd,
		rep.Notes, payload, rep.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM reports WHERE id = $1`, id))
}

// Update swaps the whole row in one statement; the old payload is never
// observable alongside new parameters.
func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	payload, err := json.Marshal(rep.Payload)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		UPDATE reports
		SET title=$2, patient_id=$3, subtype=$4, period_start=$5, period_end=$6,
			notes=$7, payload=$8, updated_at=NOW()
		WHERE id = $1`,
		rep.ID, rep.Title, rep.PatientID, rep.Subtype, rep.PeriodStart, rep.PeriodEnd,
		rep.Notes, payload)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Report, int, error) {
	where := `WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		AND ($2::uuid IS NULL OR patient_id = $2)
		AND ($3 = '' OR subtype = $3)
		AND ($4::timestamptz IS NULL OR created_at >= $4)
		AND ($5::timestamptz IS NULL OR created_at < $5)`
	args := []interface{}{f.Title, f.PatientID, string(f.Subtype), f.CreatedFrom, f.CreatedTo}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM reports `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reportCols+` FROM reports `+where+`
		ORDER BY created_at DESC LIMIT $6 OFFSET $7`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	return items, total, nil
}

package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediq/mediq/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO queue_entries (id, hospital_id, patient_id, summary_id, priority, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		e.ID, e.HospitalID, e.PatientID, e.SummaryID, e.Priority, e.Status).
		Scan(&e.CreatedAt)
}

func (r *repoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Row, int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM queue_entries WHERE hospital_id = $1`, hospitalID).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT q.id, q.hospital_id, q.patient_id, q.summary_id, q.priority, q.status, q.created_at,
		        u.full_name, s.triage_code
		 FROM queue_entries q
		 LEFT JOIN users u ON u.id = q.patient_id
		 LEFT JOIN summaries s ON s.id = q.summary_id
		 WHERE q.hospital_id = $1
		 ORDER BY q.priority ASC, q.created_at ASC
		 LIMIT $2 OFFSET $3`, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.HospitalID, &row.PatientID, &row.SummaryID,
			&row.Priority, &row.Status, &row.CreatedAt,
			&row.PatientName, &row.TriageCode); err != nil {
			return nil, 0, err
		}
		out = append(out, &row)
	}
	return out, total, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE queue_entries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

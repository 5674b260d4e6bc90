package attendance

import (
	"context"
	"database/sql"
	"time"
)

// Repository persists attendance records. It works unchanged against both
// Postgres (pgx) and SQLite: $n placeholders and INSERT ... RETURNING are
// understood by either driver, so only the schema DDL is dialect-aware.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new record, defaulting every absent text field to '' and
// stamping created_at with the current epoch milliseconds. It returns the
// assigned id and timestamp. Missing fields are never an error; only storage
// failures are.
func (r *Repository) Create(ctx context.Context, f Fields) (id, createdAt int64, err error) {
	createdAt = time.Now().UnixMilli()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (student_name, role, date, time_in, time_out, total_hours, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, f.StudentName, f.Role, f.Date, f.TimeIn, f.TimeOut, f.TotalHours, f.ImageURL, createdAt)
	if err = row.Scan(&id); err != nil {
		return 0, 0, err
	}
	return id, createdAt, nil
}

// ReadAll returns every record ordered by creation time, id as tiebreak so the
// order is deterministic for equal timestamps. No pagination, no filtering;
// the client filters.
func (r *Repository) ReadAll(ctx context.Context, order SortOrder) ([]Record, error) {
	dir := "DESC"
	if order == SortAsc {
		dir = "ASC"
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_name, role, date, time_in, time_out, total_hours, image_url, created_at
		FROM attendance
		ORDER BY created_at `+dir+`, id `+dir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var imageURL sql.NullString
		if err := rows.Scan(&rec.ID, &rec.StudentName, &rec.Role, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.TotalHours, &imageURL, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			rec.ImageURL = &imageURL.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Update overwrites every mutable field of the addressed record. id and
// created_at are immutable. The affected-row count is the not-found signal:
// zero rows means no such id, and that is not an error.
func (r *Repository) Update(ctx context.Context, id int64, f Fields) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE attendance
		SET student_name = $1, role = $2, date = $3, time_in = $4, time_out = $5, total_hours = $6, image_url = $7
		WHERE id = $8
	`, f.StudentName, f.Role, f.Date, f.TimeIn, f.TimeOut, f.TotalHours, f.ImageURL, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the addressed record, reporting not-found the same way as
// Update.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

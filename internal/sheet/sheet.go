// Package sheet holds the editable attendance grid: a client-side mirror of
// the record collection with derived total hours, filtering, aggregation and
// CSV export. It persists through the records API and owns the draft-row
// lifecycle (rows that exist in the grid but not yet in the store).
package sheet

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"attendsheet/internal/apiclient"
	"attendsheet/internal/attendance"
)

var (
	// ErrRowNotFound reports a key matching no row in the sheet.
	ErrRowNotFound = errors.New("row not found")
	// ErrMissingFields reports a save attempted before the required fields
	// (name, role, date) are filled in. The service itself accepts incomplete
	// records; this check is deliberately client-side only.
	ErrMissingFields = errors.New("name, role and date are required")
)

// Field names an editable column of a row.
type Field string

const (
	FieldStudentName Field = "studentName"
	FieldRole        Field = "role"
	FieldDate        Field = "date"
	FieldTimeIn      Field = "timeIn"
	FieldTimeOut     Field = "timeOut"
	FieldImageURL    Field = "imageUrl"
)

// Row is one grid row. A row is either a draft (DraftKey set, no store id) or
// persisted (store id set, DraftKey empty); the two states are distinguished
// structurally, never by inspecting id formats.
type Row struct {
	DraftKey string
	Record   attendance.Record
}

// Persisted reports whether the row exists in the store.
func (r Row) Persisted() bool { return r.DraftKey == "" }

// Key identifies the row within the sheet: the draft key while unsaved, the
// store id afterwards.
func (r Row) Key() string {
	if r.DraftKey != "" {
		return r.DraftKey
	}
	return strconv.FormatInt(r.Record.ID, 10)
}

// Options tunes derivation behavior.
type Options struct {
	// LunchBreak is deducted from every computed shift. Zero means no
	// deduction, which is the default rule.
	LunchBreak time.Duration
}

// Sheet is the in-memory record collection.
type Sheet struct {
	client *apiclient.Client
	opts   Options
	rows   []Row
}

// New creates an empty sheet persisting through the given client.
func New(client *apiclient.Client, opts Options) *Sheet {
	return &Sheet{client: client, opts: opts}
}

// Load replaces the persisted rows with the server's current collection,
// newest first. Unsaved drafts stay at the top of the grid.
func (s *Sheet) Load(ctx context.Context) error {
	records, err := s.client.ListRecords(ctx, attendance.SortDesc)
	if err != nil {
		return err
	}

	rows := make([]Row, 0, len(records))
	for _, r := range s.rows {
		if !r.Persisted() {
			rows = append(rows, r)
		}
	}
	for _, rec := range records {
		rows = append(rows, Row{Record: rec})
	}
	s.rows = rows
	return nil
}

// Rows returns the full collection in grid order.
func (s *Sheet) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// AddRow prepends a new empty draft row and returns it.
func (s *Sheet) AddRow() Row {
	row := Row{DraftKey: uuid.NewString()}
	s.rows = append([]Row{row}, s.rows...)
	return row
}

// SetField updates one field of the addressed row. Editing either clock time
// recomputes totalHours with the sheet's lunch policy.
func (s *Sheet) SetField(key string, field Field, value string) (Row, error) {
	i := s.index(key)
	if i < 0 {
		return Row{}, ErrRowNotFound
	}

	rec := &s.rows[i].Record
	switch field {
	case FieldStudentName:
		rec.StudentName = value
	case FieldRole:
		rec.Role = value
	case FieldDate:
		rec.Date = value
	case FieldTimeIn:
		rec.TimeIn = value
	case FieldTimeOut:
		rec.TimeOut = value
	case FieldImageURL:
		if value == "" {
			rec.ImageURL = nil
		} else {
			rec.ImageURL = &value
		}
	default:
		return Row{}, errors.New("unknown field " + string(field))
	}

	if field == FieldTimeIn || field == FieldTimeOut {
		rec.TotalHours = ComputeHours(rec.TimeIn, rec.TimeOut, s.opts.LunchBreak)
	}
	return s.rows[i], nil
}

// Save persists the addressed row: drafts are created (adopting the assigned
// id and timestamp), persisted rows are updated with the full record.
func (s *Sheet) Save(ctx context.Context, key string) (Row, error) {
	i := s.index(key)
	if i < 0 {
		return Row{}, ErrRowNotFound
	}

	row := s.rows[i]
	rec := row.Record
	if rec.StudentName == "" || rec.Role == "" || rec.Date == "" {
		return Row{}, ErrMissingFields
	}

	if row.Persisted() {
		if err := s.client.UpdateRecord(ctx, rec.ID, rec.Fields()); err != nil {
			return Row{}, err
		}
		return row, nil
	}

	id, createdAt, err := s.client.CreateRecord(ctx, rec.Fields())
	if err != nil {
		return Row{}, err
	}
	s.rows[i].DraftKey = ""
	s.rows[i].Record.ID = id
	s.rows[i].Record.CreatedAt = createdAt
	return s.rows[i], nil
}

// Delete removes the addressed row, deleting it from the store when it was
// persisted. Drafts are dropped locally.
func (s *Sheet) Delete(ctx context.Context, key string) error {
	i := s.index(key)
	if i < 0 {
		return ErrRowNotFound
	}

	row := s.rows[i]
	if row.Persisted() {
		if err := s.client.DeleteRecord(ctx, row.Record.ID); err != nil {
			return err
		}
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// Filter returns the rows matching the query: a case-insensitive substring of
// studentName or role, and, when dateFilter is non-empty, a substring of the
// date as well.
func (s *Sheet) Filter(query, dateFilter string) []Row {
	q := strings.ToLower(query)
	var out []Row
	for _, row := range s.rows {
		rec := row.Record
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.StudentName), q) &&
			!strings.Contains(strings.ToLower(rec.Role), q) {
			continue
		}
		if dateFilter != "" && !strings.Contains(rec.Date, dateFilter) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// TotalHours sums totalHours over the filtered rows, counting non-numeric
// values as zero, formatted to 2 decimals.
func (s *Sheet) TotalHours(query, dateFilter string) string {
	var total float64
	for _, row := range s.Filter(query, dateFilter) {
		if v, err := strconv.ParseFloat(row.Record.TotalHours, 64); err == nil {
			total += v
		}
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}

func (s *Sheet) index(key string) int {
	for i, row := range s.rows {
		if row.Key() == key {
			return i
		}
	}
	return -1
}

package sheet_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"attendsheet/internal/apiclient"
	"attendsheet/internal/attendance"
	"attendsheet/internal/sheet"
)

// fakeService is an in-memory stand-in for the records API.
type fakeService struct {
	records map[int64]attendance.Record
	nextID  int64
}

func newFakeService() *fakeService {
	return &fakeService{records: make(map[int64]attendance.Record)}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/records", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			var out []attendance.Record
			for _, rec := range f.records {
				out = append(out, rec)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var fields attendance.Fields
			json.NewDecoder(r.Body).Decode(&fields)
			f.nextID++
			rec := attendance.Record{
				ID:          f.nextID,
				StudentName: fields.StudentName,
				Role:        fields.Role,
				Date:        fields.Date,
				TimeIn:      fields.TimeIn,
				TimeOut:     fields.TimeOut,
				TotalHours:  fields.TotalHours,
				ImageURL:    &fields.ImageURL,
				CreatedAt:   time.Now().UnixMilli() + f.nextID,
			}
			f.records[rec.ID] = rec
			json.NewEncoder(w).Encode(map[string]int64{"id": rec.ID, "createdAt": rec.CreatedAt})
		}
	})
	mux.HandleFunc("/api/records/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/records/"), 10, 64)
		if _, ok := f.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "record not found"})
			return
		}
		switch r.Method {
		case http.MethodPut:
			var fields attendance.Fields
			json.NewDecoder(r.Body).Decode(&fields)
			rec := f.records[id]
			rec.StudentName = fields.StudentName
			rec.Role = fields.Role
			rec.Date = fields.Date
			rec.TimeIn = fields.TimeIn
			rec.TimeOut = fields.TimeOut
			rec.TotalHours = fields.TotalHours
			rec.ImageURL = &fields.ImageURL
			f.records[id] = rec
		case http.MethodDelete:
			delete(f.records, id)
		}
		json.NewEncoder(w).Encode(map[string]int64{"changes": 1})
	})
	return mux
}

func newTestSheet(t *testing.T, opts sheet.Options) (*sheet.Sheet, *fakeService) {
	t.Helper()
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return sheet.New(apiclient.New(srv.URL), opts), svc
}

func TestDraftLifecycle(t *testing.T) {
	s, svc := newTestSheet(t, sheet.Options{})
	ctx := context.Background()

	row := s.AddRow()
	require.False(t, row.Persisted())
	require.NotEmpty(t, row.Key())

	// Required fields missing: save refuses client-side.
	_, err := s.Save(ctx, row.Key())
	require.ErrorIs(t, err, sheet.ErrMissingFields)

	_, err = s.SetField(row.Key(), sheet.FieldStudentName, "Ada")
	require.NoError(t, err)
	s.SetField(row.Key(), sheet.FieldRole, "Web Developer")
	s.SetField(row.Key(), sheet.FieldDate, "2024-01-05")
	s.SetField(row.Key(), sheet.FieldTimeIn, "09:00")
	updated, err := s.SetField(row.Key(), sheet.FieldTimeOut, "17:30")
	require.NoError(t, err)
	require.Equal(t, "8.50", updated.Record.TotalHours)

	saved, err := s.Save(ctx, row.Key())
	require.NoError(t, err)
	require.True(t, saved.Persisted())
	require.Equal(t, int64(1), saved.Record.ID)
	require.NotZero(t, saved.Record.CreatedAt)
	require.Len(t, svc.records, 1)

	// The old draft key no longer addresses the row; the store id does.
	_, err = s.SetField(row.Key(), sheet.FieldRole, "QA")
	require.ErrorIs(t, err, sheet.ErrRowNotFound)
	_, err = s.SetField(saved.Key(), sheet.FieldRole, "QA")
	require.NoError(t, err)

	// Saving again is a full-row update.
	_, err = s.Save(ctx, saved.Key())
	require.NoError(t, err)
	require.Equal(t, "QA", svc.records[1].Role)
}

func TestLunchDeductionOption(t *testing.T) {
	s, _ := newTestSheet(t, sheet.Options{LunchBreak: time.Hour})
	row := s.AddRow()
	s.SetField(row.Key(), sheet.FieldTimeIn, "09:00")
	updated, err := s.SetField(row.Key(), sheet.FieldTimeOut, "17:30")
	require.NoError(t, err)
	require.Equal(t, "7.50", updated.Record.TotalHours)
}

func TestDeleteRow(t *testing.T) {
	s, svc := newTestSheet(t, sheet.Options{})
	ctx := context.Background()

	// Draft delete never touches the service.
	draft := s.AddRow()
	require.NoError(t, s.Delete(ctx, draft.Key()))
	require.Empty(t, s.Rows())

	row := s.AddRow()
	s.SetField(row.Key(), sheet.FieldStudentName, "Ada")
	s.SetField(row.Key(), sheet.FieldRole, "QA")
	s.SetField(row.Key(), sheet.FieldDate, "2024-01-05")
	saved, err := s.Save(ctx, row.Key())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, saved.Key()))
	require.Empty(t, s.Rows())
	require.Empty(t, svc.records)

	require.ErrorIs(t, s.Delete(ctx, "999"), sheet.ErrRowNotFound)
}

func TestLoadKeepsDrafts(t *testing.T) {
	s, svc := newTestSheet(t, sheet.Options{})
	svc.nextID = 1
	svc.records[1] = attendance.Record{ID: 1, StudentName: "Ada", CreatedAt: 100}

	draft := s.AddRow()
	require.NoError(t, s.Load(context.Background()))

	rows := s.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, draft.Key(), rows[0].Key())
	require.Equal(t, int64(1), rows[1].Record.ID)
}

func TestFilterAndTotals(t *testing.T) {
	s, svc := newTestSheet(t, sheet.Options{})
	svc.records[1] = attendance.Record{ID: 1, StudentName: "Alice", Role: "Web Developer", Date: "2024-01-05", TotalHours: "8.50", CreatedAt: 300}
	svc.records[2] = attendance.Record{ID: 2, StudentName: "Bob", Role: "UI/UX", Date: "2024-01-06", TotalHours: "7.25", CreatedAt: 200}
	svc.records[3] = attendance.Record{ID: 3, StudentName: "Carol", Role: "QA", Date: "2024-02-01", TotalHours: "not-a-number", CreatedAt: 100}
	require.NoError(t, s.Load(context.Background()))

	require.Len(t, s.Filter("", ""), 3)
	require.Len(t, s.Filter("ali", ""), 1)
	// Role matches too.
	require.Len(t, s.Filter("ui/ux", ""), 1)
	require.Len(t, s.Filter("", "2024-01"), 2)
	require.Len(t, s.Filter("bob", "2024-02"), 0)

	require.Equal(t, "15.75", s.TotalHours("", ""))
	require.Equal(t, "8.50", s.TotalHours("alice", ""))
	// Non-numeric totals count as zero.
	require.Equal(t, "0.00", s.TotalHours("carol", ""))
}

func TestExportCSV(t *testing.T) {
	s, _ := newTestSheet(t, sheet.Options{})
	ctx := context.Background()

	row := s.AddRow()
	s.SetField(row.Key(), sheet.FieldStudentName, `Doe, Jane "JJ"`)
	s.SetField(row.Key(), sheet.FieldRole, "QA")
	s.SetField(row.Key(), sheet.FieldDate, "2024-01-05")
	s.SetField(row.Key(), sheet.FieldTimeIn, "09:00")
	s.SetField(row.Key(), sheet.FieldTimeOut, "17:00")
	_, err := s.Save(ctx, row.Key())
	require.NoError(t, err)

	row2 := s.AddRow()
	s.SetField(row2.Key(), sheet.FieldStudentName, "Bob")
	s.SetField(row2.Key(), sheet.FieldRole, "UI/UX")
	s.SetField(row2.Key(), sheet.FieldDate, "2024-01-06")
	_, err = s.Save(ctx, row2.Key())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3) // header + one line per record
	require.Equal(t, "Student Name,Role,Date,Time In,Time Out,Total Hours,Image", lines[0])
	// Embedded comma and quotes survive round-tripping.
	require.Contains(t, buf.String(), `"Doe, Jane ""JJ"""`)
}

package sheet

import (
	"encoding/csv"
	"io"
)

// csvHeader is the documented export column order.
var csvHeader = []string{"Student Name", "Role", "Date", "Time In", "Time Out", "Total Hours", "Image"}

// ExportCSV writes the full, unfiltered collection as CSV: one header line and
// one line per row. encoding/csv quotes embedded commas, quotes and newlines,
// so free-text names cannot corrupt the output.
func (s *Sheet) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range s.rows {
		rec := row.Record
		image := ""
		if rec.ImageURL != nil {
			image = *rec.ImageURL
		}
		line := []string{rec.StudentName, rec.Role, rec.Date, rec.TimeIn, rec.TimeOut, rec.TotalHours, image}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package attendance

// Record is one attendance row as stored and as served over the API.
// totalHours is derived client-side and stored verbatim; the store never
// recomputes it. imageUrl is null only for rows that predate the column
// being written; new writes always persist a string.
type Record struct {
	ID          int64   `json:"id"`
	StudentName string  `json:"studentName"`
	Role        string  `json:"role"`
	Date        string  `json:"date"`
	TimeIn      string  `json:"timeIn"`
	TimeOut     string  `json:"timeOut"`
	TotalHours  string  `json:"totalHours"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   int64   `json:"createdAt"`
}

// Fields is an incoming write payload. Absent JSON fields decode to the zero
// string, which is exactly the defaulting contract: text columns are never
// persisted as NULL.
type Fields struct {
	StudentName string `json:"studentName"`
	Role        string `json:"role"`
	Date        string `json:"date"`
	TimeIn      string `json:"timeIn"`
	TimeOut     string `json:"timeOut"`
	TotalHours  string `json:"totalHours"`
	ImageURL    string `json:"imageUrl"`
}

// Fields extracts the mutable fields of a record, for full-row updates.
func (r Record) Fields() Fields {
	f := Fields{
		StudentName: r.StudentName,
		Role:        r.Role,
		Date:        r.Date,
		TimeIn:      r.TimeIn,
		TimeOut:     r.TimeOut,
		TotalHours:  r.TotalHours,
	}
	if r.ImageURL != nil {
		f.ImageURL = *r.ImageURL
	}
	return f
}

// SortOrder selects the ReadAll ordering by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a query-string value to a SortOrder, defaulting to
// descending for anything unrecognized.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

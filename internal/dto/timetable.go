package dto

// ── timetable module DTOs ──

// CreateTimetableRequest mirrors the creation form: subjects one per line,
// teachers as "Materia: Nome Docente" lines. Parsing and validation happen
// in the service.
type CreateTimetableRequest struct {
	ClassIdentifier string `json:"class_identifier"`
	SchoolYear      string `json:"school_year"`
	WeeklyHours     int    `json:"weekly_hours"`
	Subjects        string `json:"subjects"`
	Teachers        string `json:"teachers"`
}

// TimetableResponse is the timetable view returned by the API.
type TimetableResponse struct {
	ID              string            `json:"id"`
	ClassIdentifier string            `json:"class_identifier"`
	SchoolYear      string            `json:"school_year"`
	WeeklyHours     int               `json:"weekly_hours"`
	Subjects        []string          `json:"subjects"`
	Teachers        map[string]string `json:"teachers"`
	CreatedAt       string            `json:"created_at"`
}

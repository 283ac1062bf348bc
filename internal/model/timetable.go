package model

// Timetable maps the timetables table. Subjects keeps the insertion order of
// the form input; Teachers maps subject name to teacher name.
type Timetable struct {
	TimetableID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	OwnerID         string     `gorm:"type:uuid;not null;index"                       json:"owner_id"`
	ClassIdentifier string     `gorm:"type:varchar(255);not null"                     json:"class_identifier"`
	SchoolYear      string     `gorm:"type:varchar(20);not null"                      json:"school_year"`
	WeeklyHours     int        `gorm:"not null"                                       json:"weekly_hours"`
	Subjects        StringList `gorm:"type:jsonb;not null"                            json:"subjects"`
	Teachers        StringMap  `gorm:"type:jsonb;not null"                            json:"teachers"`
	BaseModel
}

// TableName sets the table name.
func (Timetable) TableName() string { return "timetables" }

package model

import "time"

// ConstraintStatus is the lifecycle state of a constraint. Only the
// constraint service writes this field.
type ConstraintStatus string

const (
	StatusPending           ConstraintStatus = "pending"
	StatusTranslated        ConstraintStatus = "translated"
	StatusTranslationFailed ConstraintStatus = "translation_failed"
	StatusVerified          ConstraintStatus = "verified"
	StatusRejected          ConstraintStatus = "rejected"
)

// Translatable reports whether the constraint is eligible for the next
// translation batch.
func (s ConstraintStatus) Translatable() bool {
	return s == StatusPending || s == StatusTranslationFailed
}

// Constraint maps the constraints table. FormalRepresentation is non-nil
// exactly when status is translated or verified.
type Constraint struct {
	ConstraintID         string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"constraint_id"`
	TimetableID          string           `gorm:"type:uuid;not null;index"                       json:"timetable_id"`
	NaturalLanguageText  string           `gorm:"type:varchar(1000);not null"                    json:"natural_language_text"`
	FormalRepresentation JSONMap          `gorm:"type:jsonb"                                     json:"formal_representation,omitempty"`
	Status               ConstraintStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	CreatedAt            time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Constraint) TableName() string { return "constraints" }

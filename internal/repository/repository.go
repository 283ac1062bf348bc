package repository

import "gorm.io/gorm"

// Repository aggregates every repository interface.
type Repository struct {
	User       UserRepository
	Timetable  TimetableRepository
	Constraint ConstraintRepository
}

// NewRepository wires the GORM-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Timetable:  NewTimetableRepo(db),
		Constraint: NewConstraintRepo(db),
	}
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/giorgiovilardo/easyorario/internal/model"
)

// ConstraintRepository is the data access interface for constraints.
// This is all the querying the constraint lifecycle needs.
type ConstraintRepository interface {
	Create(ctx context.Context, constraint *model.Constraint) error
	GetByID(ctx context.Context, id string) (*model.Constraint, error)
	GetByTimetable(ctx context.Context, timetableID string) ([]model.Constraint, error)
	Update(ctx context.Context, constraint *model.Constraint) error
}

type constraintRepo struct {
	db *gorm.DB
}

// NewConstraintRepo creates a ConstraintRepository.
func NewConstraintRepo(db *gorm.DB) ConstraintRepository {
	return &constraintRepo{db: db}
}

func (r *constraintRepo) Create(ctx context.Context, constraint *model.Constraint) error {
	return r.db.WithContext(ctx).Create(constraint).Error
}

func (r *constraintRepo) GetByID(ctx context.Context, id string) (*model.Constraint, error) {
	var constraint model.Constraint
	err := r.db.WithContext(ctx).
		Where("constraint_id = ?", id).
		First(&constraint).Error
	if err != nil {
		return nil, err
	}
	return &constraint, nil
}

func (r *constraintRepo) GetByTimetable(ctx context.Context, timetableID string) ([]model.Constraint, error) {
	var constraints []model.Constraint
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", timetableID).
		Order("created_at ASC").
		Find(&constraints).Error
	return constraints, err
}

// Update persists the mutable fields. Select forces the NULL write when a
// rejection clears formal_representation.
func (r *constraintRepo) Update(ctx context.Context, constraint *model.Constraint) error {
	return r.db.WithContext(ctx).
		Model(constraint).
		Select("status", "formal_representation").
		Updates(constraint).Error
}

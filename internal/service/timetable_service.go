package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/model"
	"github.com/giorgiovilardo/easyorario/internal/repository"
)

// ── timetable business errors ──

var (
	ErrTimetableNotFound       = errors.New("timetable not found")
	ErrTimetableForbidden      = errors.New("timetable belongs to another user")
	ErrClassIdentifierRequired = errors.New("class identifier required")
	ErrClassIdentifierTooLong  = errors.New("class identifier too long")
	ErrSchoolYearRequired      = errors.New("school year required")
	ErrWeeklyHoursInvalid      = errors.New("weekly hours out of range")
	ErrSubjectsRequired        = errors.New("at least one subject required")
	ErrTeachersFormatInvalid   = errors.New("invalid teachers format")
)

const maxClassIdentifierLen = 255

// TimetableService handles timetable creation and read access.
type TimetableService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error)
	List(ctx context.Context, ownerID string) ([]dto.TimetableResponse, error)
	Get(ctx context.Context, id, ownerID string) (*dto.TimetableResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService creates a TimetableService instance.
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) Create(ctx context.Context, ownerID string, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error) {
	classIdentifier := strings.TrimSpace(req.ClassIdentifier)
	if classIdentifier == "" {
		return nil, ErrClassIdentifierRequired
	}
	if len(classIdentifier) > maxClassIdentifierLen {
		return nil, ErrClassIdentifierTooLong
	}

	schoolYear := strings.TrimSpace(req.SchoolYear)
	if schoolYear == "" {
		return nil, ErrSchoolYearRequired
	}

	if req.WeeklyHours < 1 || req.WeeklyHours > 60 {
		return nil, ErrWeeklyHoursInvalid
	}

	subjects := parseLines(req.Subjects)
	if len(subjects) == 0 {
		return nil, ErrSubjectsRequired
	}

	teachers, err := parseTeachers(req.Teachers)
	if err != nil {
		return nil, err
	}

	timetable := &model.Timetable{
		OwnerID:         ownerID,
		ClassIdentifier: classIdentifier,
		SchoolYear:      schoolYear,
		WeeklyHours:     req.WeeklyHours,
		Subjects:        subjects,
		Teachers:        teachers,
	}
	if err := s.repo.Timetable.Create(ctx, timetable); err != nil {
		s.logger.Error("creating timetable", zap.Error(err))
		return nil, err
	}

	s.logger.Info("timetable created",
		zap.String("timetable_id", timetable.TimetableID),
		zap.String("owner_id", ownerID),
	)

	return toTimetableResponse(timetable), nil
}

// parseLines splits a textarea-style field into trimmed non-empty lines.
func parseLines(raw string) model.StringList {
	var out model.StringList
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseTeachers parses "Materia: Nome Docente" lines.
func parseTeachers(raw string) (model.StringMap, error) {
	teachers := make(model.StringMap)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		subject, teacher, found := strings.Cut(line, ":")
		if !found {
			return nil, ErrTeachersFormatInvalid
		}
		subject = strings.TrimSpace(subject)
		teacher = strings.TrimSpace(teacher)
		if subject == "" || teacher == "" {
			return nil, ErrTeachersFormatInvalid
		}
		teachers[subject] = teacher
	}
	return teachers, nil
}

// ────────────────────── List ──────────────────────

func (s *timetableService) List(ctx context.Context, ownerID string) ([]dto.TimetableResponse, error) {
	timetables, err := s.repo.Timetable.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("listing timetables", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimetableResponse, 0, len(timetables))
	for i := range timetables {
		result = append(result, *toTimetableResponse(&timetables[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *timetableService) Get(ctx context.Context, id, ownerID string) (*dto.TimetableResponse, error) {
	timetable, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("looking up timetable", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if timetable.OwnerID != ownerID {
		return nil, ErrTimetableForbidden
	}
	return toTimetableResponse(timetable), nil
}

// ── helpers ──

func toTimetableResponse(t *model.Timetable) *dto.TimetableResponse {
	return &dto.TimetableResponse{
		ID:              t.TimetableID,
		ClassIdentifier: t.ClassIdentifier,
		SchoolYear:      t.SchoolYear,
		WeeklyHours:     t.WeeklyHours,
		Subjects:        t.Subjects,
		Teachers:        t.Teachers,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

// fetchOwnedTimetable loads a timetable and enforces ownership. Shared by
// the constraint, conflict and export paths.
func fetchOwnedTimetable(ctx context.Context, repo *repository.Repository, id, ownerID string) (*model.Timetable, error) {
	timetable, err := repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}
	if timetable.OwnerID != ownerID {
		return nil, ErrTimetableForbidden
	}
	return timetable, nil
}

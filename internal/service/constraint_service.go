package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/internal/model"
	"github.com/giorgiovilardo/easyorario/internal/repository"
)

// ── constraint business errors ──

var (
	ErrConstraintTextRequired    = errors.New("constraint text required")
	ErrConstraintTextTooLong     = errors.New("constraint text too long")
	ErrConstraintNotFound        = errors.New("constraint not found")
	ErrConstraintForbidden       = errors.New("constraint belongs to another timetable")
	ErrConstraintNotTranslatable = errors.New("constraint is not in the translated state")
)

const maxConstraintTextLen = 1000

// ConstraintTranslator is the slice of the LLM adapter the lifecycle needs.
type ConstraintTranslator interface {
	TranslateConstraint(ctx context.Context, ep llm.Endpoint, constraintText string, tctx llm.TimetableContext) (map[string]interface{}, error)
}

// ConstraintService owns the constraint state machine:
//
//	pending → translated | translation_failed
//	translation_failed → translated | translation_failed   (next batch)
//	translated → verified | rejected                       (terminal)
//
// No other code path writes a constraint's status.
type ConstraintService interface {
	AddConstraint(ctx context.Context, timetableID, ownerID, text string) (*dto.ConstraintResponse, error)
	ListConstraints(ctx context.Context, timetableID, ownerID string) ([]dto.ConstraintResponse, error)
	TranslatePending(ctx context.Context, timetableID, ownerID string, ep llm.Endpoint) (*dto.TranslateResponse, error)
	VerifyConstraint(ctx context.Context, constraintID, timetableID, ownerID string) (*dto.ConstraintResponse, error)
	RejectConstraint(ctx context.Context, constraintID, timetableID, ownerID string) (*dto.ConstraintResponse, error)
	DetectConflicts(ctx context.Context, timetableID, ownerID string) ([]dto.ConflictWarning, error)
}

type constraintService struct {
	repo       *repository.Repository
	translator ConstraintTranslator
	logger     *zap.Logger
}

// NewConstraintService creates a ConstraintService instance.
func NewConstraintService(repo *repository.Repository, translator ConstraintTranslator, logger *zap.Logger) ConstraintService {
	return &constraintService{repo: repo, translator: translator, logger: logger}
}

// ────────────────────── AddConstraint ──────────────────────

func (s *constraintService) AddConstraint(ctx context.Context, timetableID, ownerID, text string) (*dto.ConstraintResponse, error) {
	if _, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrConstraintTextRequired
	}
	if len([]rune(text)) > maxConstraintTextLen {
		return nil, ErrConstraintTextTooLong
	}

	constraint := &model.Constraint{
		TimetableID:         timetableID,
		NaturalLanguageText: text,
		Status:              model.StatusPending,
	}
	if err := s.repo.Constraint.Create(ctx, constraint); err != nil {
		s.logger.Error("creating constraint", zap.Error(err))
		return nil, err
	}

	s.logger.Info("constraint added",
		zap.String("constraint_id", constraint.ConstraintID),
		zap.String("timetable_id", timetableID),
	)

	return toConstraintResponse(constraint), nil
}

// ────────────────────── ListConstraints ──────────────────────

func (s *constraintService) ListConstraints(ctx context.Context, timetableID, ownerID string) ([]dto.ConstraintResponse, error) {
	if _, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID); err != nil {
		return nil, err
	}
	constraints, err := s.repo.Constraint.GetByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("listing constraints", zap.Error(err))
		return nil, err
	}
	return toConstraintResponses(constraints), nil
}

// ────────────────────── TranslatePending ──────────────────────

// TranslatePending runs one sequential translation batch over every pending
// or previously-failed constraint, in created_at order.
//
// A TranslationError marks only the current item translation_failed and the
// batch moves on. A ConfigError is systemic: the current and every remaining
// candidate are marked translation_failed without further adapter calls.
// Either way the batch itself completes and returns the refreshed list; the
// caller reads outcomes from the statuses and counters.
func (s *constraintService) TranslatePending(ctx context.Context, timetableID, ownerID string, ep llm.Endpoint) (*dto.TranslateResponse, error) {
	timetable, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID)
	if err != nil {
		return nil, err
	}

	constraints, err := s.repo.Constraint.GetByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("fetching constraints for translation", zap.Error(err))
		return nil, err
	}

	candidates := make([]*model.Constraint, 0, len(constraints))
	for i := range constraints {
		if constraints[i].Status.Translatable() {
			candidates = append(candidates, &constraints[i])
		}
	}

	tctx := llm.TimetableContext{
		ClassIdentifier: timetable.ClassIdentifier,
		WeeklyHours:     timetable.WeeklyHours,
		Subjects:        timetable.Subjects,
		Teachers:        timetable.Teachers,
	}

	var translated, failed int
	configFailed := false

	for _, c := range candidates {
		if configFailed {
			// Fail fast: the same endpoint and key would fail for every
			// remaining item, so mark them failed without calling out.
			if err := s.markTranslationFailed(ctx, c); err != nil {
				return nil, err
			}
			failed++
			continue
		}

		fact, err := s.translator.TranslateConstraint(ctx, ep, c.NaturalLanguageText, tctx)
		if err != nil {
			var cfgErr *llm.ConfigError
			if errors.As(err, &cfgErr) {
				configFailed = true
				s.logger.Warn("llm configuration error, aborting batch",
					zap.String("kind", string(cfgErr.Kind)),
					zap.String("constraint_id", c.ConstraintID),
				)
			} else {
				s.logger.Warn("constraint translation failed",
					zap.String("constraint_id", c.ConstraintID),
					zap.Error(err),
				)
			}
			if err := s.markTranslationFailed(ctx, c); err != nil {
				return nil, err
			}
			failed++
			continue
		}

		c.FormalRepresentation = model.JSONMap(fact)
		c.Status = model.StatusTranslated
		if err := s.repo.Constraint.Update(ctx, c); err != nil {
			s.logger.Error("persisting translated constraint", zap.Error(err))
			return nil, err
		}
		translated++
	}

	refreshed, err := s.repo.Constraint.GetByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("refreshing constraints after translation", zap.Error(err))
		return nil, err
	}

	return &dto.TranslateResponse{
		Constraints: toConstraintResponses(refreshed),
		Translated:  translated,
		Failed:      failed,
	}, nil
}

func (s *constraintService) markTranslationFailed(ctx context.Context, c *model.Constraint) error {
	c.Status = model.StatusTranslationFailed
	c.FormalRepresentation = nil
	if err := s.repo.Constraint.Update(ctx, c); err != nil {
		s.logger.Error("persisting failed constraint", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── VerifyConstraint ──────────────────────

func (s *constraintService) VerifyConstraint(ctx context.Context, constraintID, timetableID, ownerID string) (*dto.ConstraintResponse, error) {
	constraint, err := s.fetchGuardedConstraint(ctx, constraintID, timetableID, ownerID)
	if err != nil {
		return nil, err
	}
	if constraint.Status != model.StatusTranslated {
		return nil, ErrConstraintNotTranslatable
	}

	constraint.Status = model.StatusVerified
	if err := s.repo.Constraint.Update(ctx, constraint); err != nil {
		s.logger.Error("persisting verified constraint", zap.Error(err))
		return nil, err
	}

	s.logger.Info("constraint verified", zap.String("constraint_id", constraintID))
	return toConstraintResponse(constraint), nil
}

// ────────────────────── RejectConstraint ──────────────────────

func (s *constraintService) RejectConstraint(ctx context.Context, constraintID, timetableID, ownerID string) (*dto.ConstraintResponse, error) {
	constraint, err := s.fetchGuardedConstraint(ctx, constraintID, timetableID, ownerID)
	if err != nil {
		return nil, err
	}
	if constraint.Status != model.StatusTranslated {
		return nil, ErrConstraintNotTranslatable
	}

	constraint.Status = model.StatusRejected
	constraint.FormalRepresentation = nil
	if err := s.repo.Constraint.Update(ctx, constraint); err != nil {
		s.logger.Error("persisting rejected constraint", zap.Error(err))
		return nil, err
	}

	s.logger.Info("constraint rejected", zap.String("constraint_id", constraintID))
	return toConstraintResponse(constraint), nil
}

// ────────────────────── DetectConflicts ──────────────────────

func (s *constraintService) DetectConflicts(ctx context.Context, timetableID, ownerID string) ([]dto.ConflictWarning, error) {
	timetable, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID)
	if err != nil {
		return nil, err
	}
	constraints, err := s.repo.Constraint.GetByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("fetching constraints for conflict detection", zap.Error(err))
		return nil, err
	}

	for i := range constraints {
		c := &constraints[i]
		if c.Status == model.StatusVerified && c.FormalRepresentation == nil {
			s.logger.Warn("verified constraint with malformed formal representation skipped",
				zap.String("constraint_id", c.ConstraintID),
			)
		}
	}

	return DetectConflicts(constraints, timetable), nil
}

// ── helpers ──

// fetchGuardedConstraint loads a constraint, checks the timetable ownership
// and the constraint/timetable association.
func (s *constraintService) fetchGuardedConstraint(ctx context.Context, constraintID, timetableID, ownerID string) (*model.Constraint, error) {
	if _, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID); err != nil {
		return nil, err
	}

	constraint, err := s.repo.Constraint.GetByID(ctx, constraintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConstraintNotFound
		}
		s.logger.Error("looking up constraint", zap.String("id", constraintID), zap.Error(err))
		return nil, err
	}
	if constraint.TimetableID != timetableID {
		return nil, ErrConstraintForbidden
	}
	return constraint, nil
}

func toConstraintResponse(c *model.Constraint) *dto.ConstraintResponse {
	return &dto.ConstraintResponse{
		ID:                   c.ConstraintID,
		TimetableID:          c.TimetableID,
		NaturalLanguageText:  c.NaturalLanguageText,
		FormalRepresentation: c.FormalRepresentation,
		Status:               string(c.Status),
		CreatedAt:            c.CreatedAt.Format(time.RFC3339),
	}
}

func toConstraintResponses(constraints []model.Constraint) []dto.ConstraintResponse {
	result := make([]dto.ConstraintResponse, 0, len(constraints))
	for i := range constraints {
		result = append(result, *toConstraintResponse(&constraints[i]))
	}
	return result
}

package service

import (
	"strings"
	"testing"

	"github.com/giorgiovilardo/easyorario/internal/model"
)

// ── detector test helpers ──

func verifiedConstraint(fr model.JSONMap) model.Constraint {
	return model.Constraint{Status: model.StatusVerified, FormalRepresentation: fr}
}

func schedulingFact(subject string, days []interface{}, slots []interface{}) model.JSONMap {
	return model.JSONMap{
		"constraint_type": "subject_scheduling",
		"description":     subject + " in orario",
		"subject":         subject,
		"days":            days,
		"time_slots":      slots,
	}
}

func testTimetable(weeklyHours int) *model.Timetable {
	return &model.Timetable{
		TimetableID:     "tt-1",
		OwnerID:         "user-1",
		ClassIdentifier: "3A",
		WeeklyHours:     weeklyHours,
	}
}

// ── teacher double booking ──

func TestDetectConflicts_TeacherDoubleBooking(t *testing.T) {
	constraints := []model.Constraint{
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "Rossi preferisce il lunedì alla seconda ora",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(2)},
		}),
		verifiedConstraint(model.JSONMap{
			"constraint_type": "subject_scheduling",
			"description":     "Matematica il lunedì alla seconda ora",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(2)},
		}),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 1 {
		t.Fatalf("want exactly one warning, got %d", len(warnings))
	}
	w := warnings[0]
	if w.ConflictType != ConflictTeacherDoubleBooking {
		t.Errorf("want %s, got %s", ConflictTeacherDoubleBooking, w.ConflictType)
	}
	want := "Conflitto: Rossi è assegnato a più lezioni contemporaneamente (lunedì, ora 2)"
	if w.Message != want {
		t.Errorf("message mismatch:\nwant %q\ngot  %q", want, w.Message)
	}
	if len(w.ConstraintDescriptions) != 2 {
		t.Errorf("want both descriptions, got %v", w.ConstraintDescriptions)
	}
}

func TestDetectConflicts_PairWarnsOnceAcrossSlots(t *testing.T) {
	// same pair collides on two slots of the same day: one warning only
	constraints := []model.Constraint{
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "prima fascia",
			"teacher":         "Rossi",
			"days":            []interface{}{"martedì"},
			"time_slots":      []interface{}{float64(1), float64(2)},
		}),
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "seconda fascia",
			"teacher":         "Rossi",
			"days":            []interface{}{"martedì"},
			"time_slots":      []interface{}{float64(1), float64(2)},
		}),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 1 {
		t.Fatalf("want one warning per constraint pair, got %d", len(warnings))
	}
}

func TestDetectConflicts_NoOverlapNoWarning(t *testing.T) {
	constraints := []model.Constraint{
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "lunedì",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1)},
		}),
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "martedì",
			"teacher":         "Rossi",
			"days":            []interface{}{"martedì"},
			"time_slots":      []interface{}{float64(1)},
		}),
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "stesso giorno, altra ora",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(3)},
		}),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 0 {
		t.Errorf("disjoint slots must not warn, got %v", warnings)
	}
}

func TestDetectConflicts_DifferentTeachersNoWarning(t *testing.T) {
	constraints := []model.Constraint{
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "Rossi",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1)},
		}),
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "Bianchi",
			"teacher":         "Bianchi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1)},
		}),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 0 {
		t.Errorf("different teachers on the same slot must not warn, got %v", warnings)
	}
}

// ── hour total mismatch ──

func TestDetectConflicts_HourTotalMismatch(t *testing.T) {
	// 5 days × 4 slots + 3 days × 5 slots = 35 hours against a 30-hour week
	constraints := []model.Constraint{
		verifiedConstraint(schedulingFact("Matematica",
			[]interface{}{"lunedì", "martedì", "mercoledì", "giovedì", "venerdì"},
			[]interface{}{float64(1), float64(2), float64(3), float64(4)},
		)),
		verifiedConstraint(schedulingFact("Italiano",
			[]interface{}{"lunedì", "martedì", "mercoledì"},
			[]interface{}{float64(1), float64(2), float64(3), float64(4), float64(5)},
		)),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))

	var hourWarnings []string
	for _, w := range warnings {
		if w.ConflictType == ConflictHourTotalMismatch {
			hourWarnings = append(hourWarnings, w.Message)
		}
	}
	if len(hourWarnings) != 1 {
		t.Fatalf("want one hour-total warning, got %d", len(hourWarnings))
	}
	if !strings.Contains(hourWarnings[0], "35") || !strings.Contains(hourWarnings[0], "30") {
		t.Errorf("message should carry both totals: %q", hourWarnings[0])
	}
}

func TestDetectConflicts_HourTotalWithinBudget(t *testing.T) {
	constraints := []model.Constraint{
		verifiedConstraint(schedulingFact("Matematica",
			[]interface{}{"lunedì", "martedì"},
			[]interface{}{float64(1), float64(2)},
		)),
	}

	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 0 {
		t.Errorf("4 hours against 30 must not warn, got %v", warnings)
	}
}

func TestDetectConflicts_HourTotalIgnoresOtherTypes(t *testing.T) {
	// teacher_unavailable hours never count toward the budget, however many
	constraints := []model.Constraint{
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_unavailable",
			"description":     "Rossi mai",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì", "martedì", "mercoledì", "giovedì", "venerdì"},
			"time_slots":      []interface{}{float64(1), float64(2), float64(3), float64(4), float64(5), float64(6)},
		}),
	}

	warnings := DetectConflicts(constraints, testTimetable(10))
	if len(warnings) != 0 {
		t.Errorf("non-scheduling constraints must not count hours, got %v", warnings)
	}
}

func TestDetectConflicts_HourTotalIgnoresPartialScheduling(t *testing.T) {
	// a scheduling constraint without concrete days or slots allocates nothing
	constraints := []model.Constraint{
		verifiedConstraint(schedulingFact("Matematica", []interface{}{}, []interface{}{float64(1), float64(2)})),
		verifiedConstraint(schedulingFact("Italiano", []interface{}{"lunedì"}, []interface{}{})),
	}

	warnings := DetectConflicts(constraints, testTimetable(1))
	if len(warnings) != 0 {
		t.Errorf("partial scheduling facts must not count hours, got %v", warnings)
	}
}

// ── robustness ──

func TestDetectConflicts_SkipsIneligibleConstraints(t *testing.T) {
	constraints := []model.Constraint{
		{Status: model.StatusVerified, FormalRepresentation: nil},
		{Status: model.StatusPending},
		{Status: model.StatusTranslated, FormalRepresentation: model.JSONMap{
			"constraint_type": "teacher_preferred",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1)},
		}},
		verifiedConstraint(model.JSONMap{
			"constraint_type": "teacher_preferred",
			"description":     "valido",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1)},
		}),
	}

	// must not panic and the single eligible constraint cannot conflict alone
	warnings := DetectConflicts(constraints, testTimetable(30))
	if len(warnings) != 0 {
		t.Errorf("want no warnings, got %v", warnings)
	}
}

func TestDetectConflicts_EmptyInput(t *testing.T) {
	if warnings := DetectConflicts(nil, testTimetable(30)); len(warnings) != 0 {
		t.Errorf("nil input must yield no warnings, got %v", warnings)
	}
}

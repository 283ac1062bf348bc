package service

import (
	"github.com/giorgiovilardo/easyorario/internal/dto"
	"github.com/giorgiovilardo/easyorario/internal/i18n"
	"github.com/giorgiovilardo/easyorario/internal/model"
)

// Conflict types carried by dto.ConflictWarning.
const (
	ConflictTeacherDoubleBooking = "teacher_double_booking"
	ConflictHourTotalMismatch    = "hour_total_mismatch"
)

// DetectConflicts scans the verified constraints of a timetable for obvious
// pre-solve conflicts. It is pure: no I/O, no mutation, safe to call
// concurrently. Warnings come grouped, double-booking first.
//
// Only verified constraints with a non-nil formal representation
// participate; anything malformed is skipped, never an error.
func DetectConflicts(constraints []model.Constraint, timetable *model.Timetable) []dto.ConflictWarning {
	eligible := make([]*model.Constraint, 0, len(constraints))
	for i := range constraints {
		c := &constraints[i]
		if c.Status == model.StatusVerified && c.FormalRepresentation != nil {
			eligible = append(eligible, c)
		}
	}

	warnings := detectTeacherDoubleBooking(eligible)
	if w := detectHourTotalMismatch(eligible, timetable.WeeklyHours); w != nil {
		warnings = append(warnings, *w)
	}
	return warnings
}

// detectTeacherDoubleBooking reports teachers claimed by two constraints on
// the same (day, slot). Each unordered constraint pair yields at most one
// warning per teacher, even when the pair overlaps on several slots.
//
// Teacher names are matched exactly as the model emitted them; no case or
// whitespace normalization.
func detectTeacherDoubleBooking(eligible []*model.Constraint) []dto.ConflictWarning {
	byTeacher := make(map[string][]*model.Constraint)
	var teacherOrder []string
	for _, c := range eligible {
		teacher := frString(c.FormalRepresentation, "teacher")
		if teacher == "" {
			continue
		}
		if _, seen := byTeacher[teacher]; !seen {
			teacherOrder = append(teacherOrder, teacher)
		}
		byTeacher[teacher] = append(byTeacher[teacher], c)
	}

	type daySlot struct {
		day  string
		slot int
	}

	var warnings []dto.ConflictWarning
	for _, teacher := range teacherOrder {
		group := byTeacher[teacher]
		if len(group) < 2 {
			continue
		}

		claimed := make(map[daySlot]int)  // (day, slot) to index of first claimant
		reported := make(map[[2]int]bool) // canonical pair key, already warned
		for i, c := range group {
			days := frStrings(c.FormalRepresentation, "days")
			slots := frInts(c.FormalRepresentation, "time_slots")
			for _, day := range days {
				for _, slot := range slots {
					key := daySlot{day: day, slot: slot}
					j, taken := claimed[key]
					if !taken {
						claimed[key] = i
						continue
					}
					if j == i {
						continue
					}
					pair := [2]int{min(i, j), max(i, j)}
					if reported[pair] {
						continue
					}
					reported[pair] = true

					var descriptions []string
					for _, idx := range []int{pair[0], pair[1]} {
						if d := frString(group[idx].FormalRepresentation, "description"); d != "" {
							descriptions = append(descriptions, d)
						}
					}

					warnings = append(warnings, dto.ConflictWarning{
						ConflictType:           ConflictTeacherDoubleBooking,
						Message:                i18n.TeacherDoubleBookingMessage(teacher, day, slot),
						ConstraintDescriptions: descriptions,
					})
				}
			}
		}
	}
	return warnings
}

// detectHourTotalMismatch sums the slots allocated by subject_scheduling
// constraints and warns once when they exceed the weekly hour budget. Other
// constraint types never count toward the budget.
func detectHourTotalMismatch(eligible []*model.Constraint, weeklyHours int) *dto.ConflictWarning {
	total := 0
	var descriptions []string
	for _, c := range eligible {
		if frString(c.FormalRepresentation, "constraint_type") != "subject_scheduling" {
			continue
		}
		days := frStrings(c.FormalRepresentation, "days")
		slots := frInts(c.FormalRepresentation, "time_slots")
		if len(days) == 0 || len(slots) == 0 {
			continue
		}
		total += len(days) * len(slots)
		if d := frString(c.FormalRepresentation, "description"); d != "" {
			descriptions = append(descriptions, d)
		}
	}

	if total <= weeklyHours {
		return nil
	}
	return &dto.ConflictWarning{
		ConflictType:           ConflictHourTotalMismatch,
		Message:                i18n.HourTotalMismatchMessage(total, weeklyHours),
		ConstraintDescriptions: descriptions,
	}
}

// ── tolerant accessors over the semi-structured formal representation ──

func frString(fr model.JSONMap, key string) string {
	if v, ok := fr[key].(string); ok {
		return v
	}
	return ""
}

func frStrings(fr model.JSONMap, key string) []string {
	raw, ok := fr[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func frInts(fr model.JSONMap, key string) []int {
	raw, ok := fr[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		switch n := item.(type) {
		case float64:
			out = append(out, int(n))
		case int:
			out = append(out, n)
		}
	}
	return out
}

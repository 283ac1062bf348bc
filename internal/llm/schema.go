package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Valid constraint_type values for a formal representation.
const (
	TypeTeacherUnavailable = "teacher_unavailable"
	TypeTeacherPreferred   = "teacher_preferred"
	TypeSubjectScheduling  = "subject_scheduling"
	TypeMaxConsecutive     = "max_consecutive"
	TypeRoomRequirement    = "room_requirement"
	TypeGeneral            = "general"
)

var constraintTypes = []string{
	TypeTeacherUnavailable,
	TypeTeacherPreferred,
	TypeSubjectScheduling,
	TypeMaxConsecutive,
	TypeRoomRequirement,
	TypeGeneral,
}

// weekdays are the lowercase Italian weekday names the model may emit.
var weekdays = map[string]bool{
	"lunedì":    true,
	"martedì":   true,
	"mercoledì": true,
	"giovedì":   true,
	"venerdì":   true,
	"sabato":    true,
	"domenica":  true,
}

// FormalConstraint is the structured fact the model must produce. The JSON
// schema sent with the request mirrors this struct field for field.
type FormalConstraint struct {
	ConstraintType      string   `json:"constraint_type"`
	Description         string   `json:"description"`
	Teacher             *string  `json:"teacher"`
	Subject             *string  `json:"subject"`
	Days                []string `json:"days"`
	TimeSlots           []int    `json:"time_slots"`
	MaxConsecutiveHours *int     `json:"max_consecutive_hours"`
	Room                *string  `json:"room"`
	Notes               *string  `json:"notes"`
}

// validate enforces the structural contract on a parsed model response.
// maxSlots 0 disables the upper bound on slot numbers (degenerate timetables
// of fewer than 5 weekly hours).
func (f *FormalConstraint) validate(maxSlots int) error {
	valid := false
	for _, t := range constraintTypes {
		if f.ConstraintType == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown constraint_type %q", f.ConstraintType)
	}
	for _, d := range f.Days {
		if !weekdays[d] {
			return fmt.Errorf("invalid weekday %q", d)
		}
	}
	for _, s := range f.TimeSlots {
		if s < 1 {
			return fmt.Errorf("time slot %d out of range", s)
		}
		if maxSlots > 0 && s > maxSlots {
			return fmt.Errorf("time slot %d out of range", s)
		}
	}
	return nil
}

// asMap converts the validated fact into the map shape the constraint store
// persists as JSONB.
func (f *FormalConstraint) asMap() (map[string]interface{}, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// parseFormalConstraint decodes the model's message content with strict
// unknown-field rejection, then validates it.
func parseFormalConstraint(content string, maxSlots int) (*FormalConstraint, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.DisallowUnknownFields()
	var f FormalConstraint
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if err := f.validate(maxSlots); err != nil {
		return nil, err
	}
	return &f, nil
}

// responseSchema is the JSON-schema directive for the chat completion call.
// strict mode requires every property to be listed as required, with
// nullability expressed through type unions.
func responseSchema(maxSlots int) map[string]interface{} {
	slotSchema := map[string]interface{}{"type": "integer", "minimum": 1}
	if maxSlots > 0 {
		slotSchema["maximum"] = maxSlots
	}
	return map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"name":   "formal_constraint",
			"strict": true,
			"schema": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"required": []string{
					"constraint_type", "description", "teacher", "subject",
					"days", "time_slots", "max_consecutive_hours", "room", "notes",
				},
				"properties": map[string]interface{}{
					"constraint_type": map[string]interface{}{
						"type": "string",
						"enum": constraintTypes,
					},
					"description": map[string]interface{}{"type": "string"},
					"teacher":     map[string]interface{}{"type": []string{"string", "null"}},
					"subject":     map[string]interface{}{"type": []string{"string", "null"}},
					"days": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"time_slots": map[string]interface{}{
						"type":  "array",
						"items": slotSchema,
					},
					"max_consecutive_hours": map[string]interface{}{"type": []string{"integer", "null"}},
					"room":                  map[string]interface{}{"type": []string{"string", "null"}},
					"notes":                 map[string]interface{}{"type": []string{"string", "null"}},
				},
			},
		},
	}
}

// TimetableContext is the timetable metadata embedded in the system prompt.
type TimetableContext struct {
	ClassIdentifier string
	WeeklyHours     int
	Subjects        []string
	Teachers        map[string]string
}

// MaxSlots returns the number of daily lesson slots the prompt advertises:
// weekly hours spread over a five-day week, capped at 8.
func (t TimetableContext) MaxSlots() int {
	slots := t.WeeklyHours / 5
	if slots > 8 {
		slots = 8
	}
	return slots
}

// teacherList renders "Materia: Docente" pairs. Subject order drives the
// output so the prompt stays deterministic across calls.
func (t TimetableContext) teacherList() string {
	pairs := make([]string, 0, len(t.Teachers))
	for _, subject := range t.Subjects {
		if teacher, ok := t.Teachers[subject]; ok {
			pairs = append(pairs, subject+": "+teacher)
		}
	}
	return strings.Join(pairs, ", ")
}

// systemPrompt renders the translation instructions with the timetable
// context embedded.
func (t TimetableContext) systemPrompt() string {
	var b strings.Builder
	b.WriteString("Sei un assistente che traduce vincoli di orario scolastico ")
	b.WriteString("dal linguaggio naturale a una rappresentazione formale JSON.\n\n")
	fmt.Fprintf(&b, "Classe: %s\n", t.ClassIdentifier)
	fmt.Fprintf(&b, "Ore settimanali: %d\n", t.WeeklyHours)
	fmt.Fprintf(&b, "Materie: %s\n", strings.Join(t.Subjects, ", "))
	fmt.Fprintf(&b, "Docenti: %s\n", t.teacherList())
	fmt.Fprintf(&b, "Ore di lezione al giorno (1-%d)\n\n", t.MaxSlots())
	b.WriteString("Rispondi esclusivamente con un oggetto JSON conforme allo schema richiesto. ")
	b.WriteString("I giorni vanno espressi con i nomi italiani in minuscolo ")
	b.WriteString("(lunedì, martedì, mercoledì, giovedì, venerdì, sabato, domenica). ")
	b.WriteString("Le ore di lezione sono numeri a partire da 1.")
	return b.String()
}

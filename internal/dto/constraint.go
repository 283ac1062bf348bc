package dto

// ── constraint module DTOs ──

// AddConstraintRequest is the new-constraint payload.
type AddConstraintRequest struct {
	Text string `json:"text"`
}

// ConstraintResponse is the constraint view returned by the API.
type ConstraintResponse struct {
	ID                   string                 `json:"id"`
	TimetableID          string                 `json:"timetable_id"`
	NaturalLanguageText  string                 `json:"natural_language_text"`
	FormalRepresentation map[string]interface{} `json:"formal_representation,omitempty"`
	Status               string                 `json:"status"`
	CreatedAt            string                 `json:"created_at"`
}

// TranslateResponse summarizes a translation batch: the refreshed constraint
// list plus outcome counters for the caller to inspect.
type TranslateResponse struct {
	Constraints []ConstraintResponse `json:"constraints"`
	Translated  int                  `json:"translated"`
	Failed      int                  `json:"failed"`
}

// ConflictWarning is a derived, never-persisted conflict report.
type ConflictWarning struct {
	ConflictType           string   `json:"conflict_type"`
	Message                string   `json:"message"`
	ConstraintDescriptions []string `json:"constraint_descriptions"`
}

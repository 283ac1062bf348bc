package llm

import (
	"strings"
	"testing"
)

func TestTimetableContext_MaxSlots(t *testing.T) {
	cases := []struct {
		weeklyHours int
		want        int
	}{
		{30, 6},
		{27, 5},
		{60, 8}, // capped
		{4, 0},  // degenerate, disables the upper bound
	}
	for _, tc := range cases {
		got := TimetableContext{WeeklyHours: tc.weeklyHours}.MaxSlots()
		if got != tc.want {
			t.Errorf("weekly hours %d: want %d slots, got %d", tc.weeklyHours, tc.want, got)
		}
	}
}

func TestParseFormalConstraint_NoSlotCapWhenZero(t *testing.T) {
	content := `{"constraint_type":"general","description":"x","teacher":null,"subject":null,"days":[],"time_slots":[12],"max_consecutive_hours":null,"room":null,"notes":null}`
	if _, err := parseFormalConstraint(content, 0); err != nil {
		t.Errorf("maxSlots 0 must accept any slot >= 1: %v", err)
	}
	if _, err := parseFormalConstraint(content, 8); err == nil {
		t.Error("slot 12 against cap 8 should be rejected")
	}
}

func TestSystemPrompt_Deterministic(t *testing.T) {
	tctx := TimetableContext{
		ClassIdentifier: "3A",
		WeeklyHours:     30,
		Subjects:        []string{"Matematica", "Italiano", "Storia"},
		Teachers: map[string]string{
			"Storia":     "Verdi",
			"Matematica": "Rossi",
			"Italiano":   "Bianchi",
		},
	}

	first := tctx.systemPrompt()
	for i := 0; i < 10; i++ {
		if tctx.systemPrompt() != first {
			t.Fatal("prompt must not depend on map iteration order")
		}
	}

	// pairs follow the subject list, not the map
	if !strings.Contains(first, "Matematica: Rossi, Italiano: Bianchi, Storia: Verdi") {
		t.Errorf("teachers out of subject order:\n%s", first)
	}
	if !strings.Contains(first, "Classe: 3A") || !strings.Contains(first, "Ore settimanali: 30") {
		t.Errorf("prompt missing timetable context:\n%s", first)
	}
}

func TestResponseSchema_SlotBounds(t *testing.T) {
	schema := responseSchema(6)
	js := schema["json_schema"].(map[string]interface{})
	props := js["schema"].(map[string]interface{})["properties"].(map[string]interface{})
	slotItems := props["time_slots"].(map[string]interface{})["items"].(map[string]interface{})

	if slotItems["minimum"] != 1 {
		t.Errorf("want minimum 1, got %v", slotItems["minimum"])
	}
	if slotItems["maximum"] != 6 {
		t.Errorf("want maximum 6, got %v", slotItems["maximum"])
	}

	schema = responseSchema(0)
	js = schema["json_schema"].(map[string]interface{})
	props = js["schema"].(map[string]interface{})["properties"].(map[string]interface{})
	slotItems = props["time_slots"].(map[string]interface{})["items"].(map[string]interface{})
	if _, ok := slotItems["maximum"]; ok {
		t.Error("maxSlots 0 must not emit a maximum")
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/internal/model"
	"github.com/giorgiovilardo/easyorario/internal/repository"
)

// ── test helpers ──

func setupExportService() (ExportService, *mockTimetableRepo, *mockConstraintRepo) {
	timetables := newMockTimetableRepo()
	constraints := newMockConstraintRepo()
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Timetable:  timetables,
		Constraint: constraints,
	}
	return NewExportService(repo, zap.NewNop()), timetables, constraints
}

// ── ExportConstraints ──

func TestExportService_ExportConstraints(t *testing.T) {
	svc, timetables, constraints := setupExportService()
	timetables.timetables["tt-1"] = &model.Timetable{
		TimetableID:     "tt-1",
		OwnerID:         "user-1",
		ClassIdentifier: "3A Scientifico",
		WeeklyHours:     30,
	}
	_ = constraints.Create(context.Background(), &model.Constraint{
		TimetableID:         "tt-1",
		NaturalLanguageText: "il prof Rossi non può il lunedì",
		Status:              model.StatusVerified,
		FormalRepresentation: model.JSONMap{
			"constraint_type": "teacher_unavailable",
			"teacher":         "Rossi",
			"days":            []interface{}{"lunedì"},
			"time_slots":      []interface{}{float64(1), float64(2)},
		},
	})

	buf, filename, err := svc.ExportConstraints(context.Background(), "tt-1", "user-1")
	if err != nil {
		t.Fatalf("ExportConstraints should succeed: %v", err)
	}
	if filename != "vincoli_3A_Scientifico.xlsx" {
		t.Errorf("unexpected filename: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("export should be a readable workbook: %v", err)
	}
	defer f.Close()

	text, err := f.GetCellValue("Vincoli", "A2")
	if err != nil {
		t.Fatalf("reading cell: %v", err)
	}
	if text != "il prof Rossi non può il lunedì" {
		t.Errorf("unexpected first row text: %q", text)
	}
	teacher, _ := f.GetCellValue("Vincoli", "D2")
	if teacher != "Rossi" {
		t.Errorf("unexpected teacher cell: %q", teacher)
	}
	slots, _ := f.GetCellValue("Vincoli", "G2")
	if slots != "1, 2" {
		t.Errorf("unexpected slots cell: %q", slots)
	}
}

func TestExportService_ExportConstraints_Empty(t *testing.T) {
	svc, timetables, _ := setupExportService()
	timetables.timetables["tt-1"] = &model.Timetable{
		TimetableID:     "tt-1",
		OwnerID:         "user-1",
		ClassIdentifier: "3A",
	}

	_, _, err := svc.ExportConstraints(context.Background(), "tt-1", "user-1")
	if !errors.Is(err, ErrExportNoConstraints) {
		t.Errorf("want ErrExportNoConstraints, got %v", err)
	}
}

func TestExportService_ExportConstraints_Forbidden(t *testing.T) {
	svc, timetables, _ := setupExportService()
	timetables.timetables["tt-1"] = &model.Timetable{
		TimetableID:     "tt-1",
		OwnerID:         "user-1",
		ClassIdentifier: "3A",
	}

	_, _, err := svc.ExportConstraints(context.Background(), "tt-1", "user-2")
	if !errors.Is(err, ErrTimetableForbidden) {
		t.Errorf("want ErrTimetableForbidden, got %v", err)
	}
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/internal/repository"
)

// ── export business errors ──

var ErrExportNoConstraints = errors.New("timetable has no constraints to export")

// ExportService renders a timetable's constraints as an Excel workbook.
// The buffer comes back to the handler, which sets the download headers.
type ExportService interface {
	ExportConstraints(ctx context.Context, timetableID, ownerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeader = []string{
	"Testo originale", "Stato", "Tipo", "Docente", "Materia", "Giorni", "Ore", "Creato",
}

func (s *exportService) ExportConstraints(ctx context.Context, timetableID, ownerID string) (*bytes.Buffer, string, error) {
	timetable, err := fetchOwnedTimetable(ctx, s.repo, timetableID, ownerID)
	if err != nil {
		return nil, "", err
	}

	constraints, err := s.repo.Constraint.GetByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("fetching constraints for export", zap.Error(err))
		return nil, "", err
	}
	if len(constraints) == 0 {
		return nil, "", ErrExportNoConstraints
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Vincoli"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			s.logger.Error("writing export header", zap.Error(err))
			return nil, "", err
		}
	}

	for i := range constraints {
		c := &constraints[i]
		row := []interface{}{
			c.NaturalLanguageText,
			string(c.Status),
			frString(c.FormalRepresentation, "constraint_type"),
			frString(c.FormalRepresentation, "teacher"),
			frString(c.FormalRepresentation, "subject"),
			strings.Join(frStrings(c.FormalRepresentation, "days"), ", "),
			joinInts(frInts(c.FormalRepresentation, "time_slots")),
			c.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				s.logger.Error("writing export row", zap.Error(err))
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("generating excel file", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("vincoli_%s.xlsx", sanitizeFilename(timetable.ClassIdentifier))
	return buf, filename, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// sanitizeFilename keeps the class identifier usable in a download name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}

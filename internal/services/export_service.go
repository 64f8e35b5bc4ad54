package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readinglab/passage-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService writes study data to spreadsheet form for download.
type ExportService interface {
	ExportResultsToExcel(ctx context.Context, userID string) ([]byte, error)
	ExportPassagesToExcel(ctx context.Context, level int) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportResultsToExcel(ctx context.Context, userID string) ([]byte, error) {
	results, err := s.repo.Result().GetByUser(ctx, userID, repositories.ResultFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load results for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Completed At", "Passage ID", "Difficulty Level", "Score", "Answers"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, r := range results {
		values := []interface{}{
			r.CompletedAt.Format("2006-01-02 15:04"),
			r.PassageID,
			r.DifficultyLevel,
			r.Score,
			fmt.Sprint([]int(r.Answers)),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write results workbook: %w", err)
	}

	s.logger.Info("results exported", "user_id", userID, "rows", len(results))
	return buf.Bytes(), nil
}

func (s *exportService) ExportPassagesToExcel(ctx context.Context, level int) ([]byte, error) {
	passages, err := s.repo.Passage().List(ctx, repositories.PassageFilters{
		DifficultyLevel: &level,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load passages for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Passages"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Title", "Difficulty Level", "Questions", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range passages {
		values := []interface{}{
			p.ID,
			p.Title,
			p.DifficultyLevel,
			len(p.Questions),
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write passages workbook: %w", err)
	}
	return buf.Bytes(), nil
}

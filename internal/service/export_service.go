package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService renders the activation statistics as a spreadsheet for
// off-platform reporting.
type ExportService interface {
	// StatsWorkbook builds the xlsx workbook and returns its bytes together
	// with a timestamped download filename.
	StatsWorkbook(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	stats  StatsService
	logger *zap.Logger
}

// NewExportService creates the ExportService on top of the stats pipeline.
func NewExportService(stats StatsService, logger *zap.Logger) ExportService {
	return &exportService{stats: stats, logger: logger}
}

const statsSheet = "Ore Attivazione"

func (s *exportService) StatsWorkbook(ctx context.Context) ([]byte, string, error) {
	// Exports always reflect the live ledger, never the snapshot cache.
	report, err := s.stats.ActivationStats(ctx, true)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", statsSheet)

	headers := []string{"Matricola", "Operatore", "Grado", "Ore", "Minuti", "Minuti Totali", "Attivazioni"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(statsSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F2937"}},
	})
	if err == nil {
		f.SetRowStyle(statsSheet, 1, 1, headerStyle)
	}

	for i, stat := range report.Stats {
		row := i + 2
		values := []interface{}{
			stat.Matricola,
			stat.Operator,
			stat.Qualification,
			stat.Hours,
			stat.Minutes,
			stat.TotalMinutes,
			stat.Pairings,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(statsSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	// Footer with the ledger health counters.
	footerRow := len(report.Stats) + 3
	footer := fmt.Sprintf("Coppie abbinate: %d · Attivazioni senza rientro: %d · Rientri orfani: %d",
		report.MatchedPairs, report.UnmatchedActivations, report.UnmatchedDeactivations)
	cell, _ := excelize.CoordinatesToCellName(1, footerRow)
	f.SetCellValue(statsSheet, cell, footer)

	f.SetColWidth(statsSheet, "A", "C", 28)
	f.SetColWidth(statsSheet, "D", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing stats workbook failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("ore_attivazione_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

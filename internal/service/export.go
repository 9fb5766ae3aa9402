package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
)

// ExportService produces the CSV/JSON run exports the UI offers for
// backup. Local files are the only export target; there is no sync.
type ExportService struct {
	runs repository.RunRepository
}

func NewExportService(runs repository.RunRepository) *ExportService {
	return &ExportService{runs: runs}
}

// Runs returns the rows for a JSON export.
func (s *ExportService) Runs(from, to string) ([]*model.Run, error) {
	return s.runs.InRange(from, to)
}

// WriteRunsCSV streams the runs in [from, to] as CSV.
func (s *ExportService) WriteRunsCSV(w io.Writer, from, to string) error {
	runs, err := s.runs.InRange(from, to)
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}

	cw := csv.NewWriter(w)
	err = cw.Write([]string{"id", "date", "distance_km", "duration_seconds", "pace_min_per_km"})
	if err != nil {
		return err
	}

	for _, run := range runs {
		err = cw.Write([]string{
			run.ID,
			run.Date,
			strconv.FormatFloat(run.DistanceKm, 'f', -1, 64),
			strconv.Itoa(run.DurationSeconds),
			strconv.FormatFloat(run.PaceMinPerKm, 'f', -1, 64),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

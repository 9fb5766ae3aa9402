package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stridelog/stridelog/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

func (h *ExportHandler) RunsCSV(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=runs-export.csv")

	err := h.exportService.WriteRunsCSV(w, from, to)
	if err != nil {
		slog.Error("failed to export runs as csv", "error", err)
		http.Error(w, "Failed to export runs", http.StatusInternalServerError)
		return
	}
}

func (h *ExportHandler) RunsJSON(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)

	runs, err := h.exportService.Runs(from, to)
	if err != nil {
		slog.Error("failed to load runs for export", "error", err)
		http.Error(w, "Failed to export runs", http.StatusInternalServerError)
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, toRunResponse(run))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=runs-export.json")

	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		slog.Error("failed to encode runs export", "error", err)
		http.Error(w, "Failed to export runs", http.StatusInternalServerError)
		return
	}
}

package google

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/schedule"
)

type SheetsExportDto struct {
	SpreadsheetId  string `json:"spreadsheetId"`
	SpreadsheetUrl string `json:"spreadsheetUrl"`
}

type Handler struct {
	service         Service
	scheduleService schedule.Service
}

func NewHandler(s Service, scheduleService schedule.Service) *Handler {
	return &Handler{s, scheduleService}
}

// ExportToSheets builds a channel schedule and writes it to Google Sheets.
// An optional spreadsheetId query parameter targets an existing spreadsheet.
func (h *Handler) ExportToSheets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	sched, err := h.scheduleService.BuildSchedule(r.Context(), vars["uid"], channel.Channel(vars["channel"]))
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.ExportSchedule(r.Context(), sched, r.URL.Query().Get("spreadsheetId"))
	if err != nil {
		if errors.Is(err, ErrUnathenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SheetsExportDto{
		SpreadsheetId:  result.SpreadsheetId,
		SpreadsheetUrl: result.SpreadsheetUrl,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

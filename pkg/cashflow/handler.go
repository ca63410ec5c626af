package cashflow

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/pkg/campaign"
)

type MonthSummaryDTO struct {
	Month     string  `json:"month"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetCashflow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	summaries, err := h.service.CampaignCashflow(r.Context(), vars["uid"])
	if errors.Is(err, campaign.ErrCampaignNotFound) {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MonthSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, MonthSummaryDTO{
			Month:     string(s.Month),
			Label:     s.Label,
			Amount:    s.Amount,
			Formatted: s.Formatted,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

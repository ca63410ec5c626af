package accrual

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetAccruals returns variance rows for the campaign, filtered by repeated
// "month" query parameters (any accepted label shape).
func (h *Handler) GetAccruals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	rows, err := h.service.Accruals(r.Context(), vars["uid"], r.URL.Query()["month"])
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

type ScheduleVersionDTO struct {
	VersionNumber    int             `json:"versionNumber"`
	DeliverySchedule json.RawMessage `json:"deliverySchedule"`
	BillingSchedule  json.RawMessage `json:"billingSchedule"`
}

// SaveVersion stores one plan version's delivery and billing schedules.
func (h *Handler) SaveVersion(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving accrual schedule version")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	versionNumber, err := strconv.Atoi(vars["version"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ScheduleVersionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored := StoredVersion{
		CampaignUid:      vars["uid"],
		VersionNumber:    versionNumber,
		DeliverySchedule: string(dto.DeliverySchedule),
		BillingSchedule:  string(dto.BillingSchedule),
	}
	if err := h.service.SaveVersion(r.Context(), stored); err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package campaign

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CampaignDTO struct {
	Uid        string  `json:"uid,omitempty"`
	ClientName string  `json:"clientName"`
	Name       string  `json:"name"`
	MbaNumber  string  `json:"mbaNumber"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	FeePercent float64 `json:"feePercent"`
	Status     string  `json:"status,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new campaign")
	w.Header().Set("Content-Type", "application/json")

	var dto CampaignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), DTOToCampaign(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CampaignToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	c, err := h.service.Get(r.Context(), vars["uid"])
	if errors.Is(err, ErrCampaignNotFound) {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(CampaignToDTO(c)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	campaigns, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		dtos = append(dtos, CampaignToDTO(c))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto CampaignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Uid = vars["uid"]

	ok, err := h.service.Update(r.Context(), DTOToCampaign(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	ok, err := h.service.Delete(r.Context(), vars["uid"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func CampaignToDTO(c Campaign) CampaignDTO {
	return CampaignDTO{
		Uid:        c.Uid,
		ClientName: c.ClientName,
		Name:       c.Name,
		MbaNumber:  c.MbaNumber,
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    c.EndDate.Format("2006-01-02"),
		FeePercent: c.FeePercent,
		Status:     string(c.Status),
	}
}

func DTOToCampaign(dto CampaignDTO) Campaign {
	startDate, _ := time.Parse("2006-01-02", dto.StartDate)
	endDate, _ := time.Parse("2006-01-02", dto.EndDate)
	return Campaign{
		Uid:        dto.Uid,
		ClientName: dto.ClientName,
		Name:       dto.Name,
		MbaNumber:  dto.MbaNumber,
		StartDate:  startDate,
		EndDate:    endDate,
		FeePercent: dto.FeePercent,
		Status:     Status(dto.Status),
	}
}

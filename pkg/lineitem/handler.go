package lineitem

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/pkg/channel"
	"github.com/mediaplan/mediaplan/pkg/deliverables"
	log "github.com/sirupsen/logrus"
)

// BurstDTO carries budget and buy amount as free text: these arrive straight
// from form inputs and may contain currency symbols or separators.
type BurstDTO struct {
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Budget          string  `json:"budget"`
	BuyAmount       string  `json:"buyAmount"`
	CalculatedValue float64 `json:"calculatedValue,omitempty"`
	FeeOverride     float64 `json:"feeOverride,omitempty"`
}

type LineItemDTO struct {
	Id          int    `json:"id"`
	CampaignUid string `json:"campaignUid"`
	Channel     string `json:"channel"`

	Market      string `json:"market,omitempty"`
	Network     string `json:"network,omitempty"`
	Station     string `json:"station,omitempty"`
	Daypart     string `json:"daypart,omitempty"`
	Placement   string `json:"placement,omitempty"`
	Size        string `json:"size,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Site        string `json:"site,omitempty"`
	BidStrategy string `json:"bidStrategy,omitempty"`
	Targeting   string `json:"targeting,omitempty"`
	Creative    string `json:"creative,omitempty"`
	BuyingDemo  string `json:"buyingDemo,omitempty"`

	BuyType string `json:"buyType"`

	BudgetIncludesFees bool `json:"budgetIncludesFees"`
	ClientPaysForMedia bool `json:"clientPaysForMedia"`
	FixedCostMedia     bool `json:"fixedCostMedia"`
	NoAdserving        bool `json:"noAdserving"`

	Bursts   []BurstDTO `json:"bursts"`
	Position int        `json:"position,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new line item")
	w.Header().Set("Content-Type", "application/json")

	var dto LineItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)
	dto.CampaignUid = vars["uid"]
	dto.Channel = vars["channel"]

	created, err := h.service.Create(r.Context(), DTOToLineItem(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(LineItemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetForChannel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	items, err := h.service.GetForChannel(r.Context(), vars["uid"], channel.Channel(vars["channel"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, LineItemToDTO(item))
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
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto LineItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == 0 || dto.Id != id {
		http.Error(w, "Invalid line item id in request body", http.StatusBadRequest)
		return
	}
	dto.CampaignUid = vars["uid"]
	dto.Channel = vars["channel"]

	ok, err := h.service.Update(r.Context(), DTOToLineItem(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Line item not found", http.StatusNotFound)
		return
	}

	updated, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LineItemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrLineItemNotFound) || (err == nil && !ok) {
		http.Error(w, "Line item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func LineItemToDTO(item LineItem) LineItemDTO {
	bursts := make([]BurstDTO, 0, len(item.Bursts))
	for _, b := range item.Bursts {
		bursts = append(bursts, BurstDTO{
			StartDate:       b.StartDate.Format("2006-01-02"),
			EndDate:         b.EndDate.Format("2006-01-02"),
			Budget:          strconv.FormatFloat(b.Budget, 'f', -1, 64),
			BuyAmount:       strconv.FormatFloat(b.BuyAmount, 'f', -1, 64),
			CalculatedValue: b.CalculatedValue,
			FeeOverride:     b.FeeOverride,
		})
	}
	return LineItemDTO{
		Id:                 item.Id,
		CampaignUid:        item.CampaignUid,
		Channel:            string(item.Channel),
		Market:             item.Market,
		Network:            item.Network,
		Station:            item.Station,
		Daypart:            item.Daypart,
		Placement:          item.Placement,
		Size:               item.Size,
		Platform:           item.Platform,
		Site:               item.Site,
		BidStrategy:        item.BidStrategy,
		Targeting:          item.Targeting,
		Creative:           item.Creative,
		BuyingDemo:         item.BuyingDemo,
		BuyType:            string(item.BuyType),
		BudgetIncludesFees: item.BudgetIncludesFees,
		ClientPaysForMedia: item.ClientPaysForMedia,
		FixedCostMedia:     item.FixedCostMedia,
		NoAdserving:        item.NoAdserving,
		Bursts:             bursts,
		Position:           item.Position,
	}
}

func DTOToLineItem(dto LineItemDTO) LineItem {
	bursts := make([]Burst, 0, len(dto.Bursts))
	for _, b := range dto.Bursts {
		bursts = append(bursts, Burst{
			StartDate:       parseDate(b.StartDate),
			EndDate:         parseDate(b.EndDate),
			Budget:          deliverables.ParseAmount(b.Budget),
			BuyAmount:       deliverables.ParseAmount(b.BuyAmount),
			CalculatedValue: b.CalculatedValue,
			FeeOverride:     b.FeeOverride,
		})
	}
	return LineItem{
		Id:                 dto.Id,
		CampaignUid:        dto.CampaignUid,
		Channel:            channel.Channel(dto.Channel),
		Market:             dto.Market,
		Network:            dto.Network,
		Station:            dto.Station,
		Daypart:            dto.Daypart,
		Placement:          dto.Placement,
		Size:               dto.Size,
		Platform:           dto.Platform,
		Site:               dto.Site,
		BidStrategy:        dto.BidStrategy,
		Targeting:          dto.Targeting,
		Creative:           dto.Creative,
		BuyingDemo:         dto.BuyingDemo,
		BuyType:            deliverables.BuyType(dto.BuyType),
		BudgetIncludesFees: dto.BudgetIncludesFees,
		ClientPaysForMedia: dto.ClientPaysForMedia,
		FixedCostMedia:     dto.FixedCostMedia,
		NoAdserving:        dto.NoAdserving,
		Bursts:             bursts,
		Position:           dto.Position,
	}
}

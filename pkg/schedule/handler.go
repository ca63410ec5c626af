package schedule

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/channel"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ExportCSV streams a channel schedule as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["uid"]
	ch := channel.Channel(vars["channel"])

	rendered, err := h.service.ExportCSV(r.Context(), uid, ch)
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"schedule-%s-%s.csv\"", uid, ch))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rendered)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

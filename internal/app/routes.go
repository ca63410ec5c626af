package app

import (
	"github.com/gorilla/mux"
	"github.com/mediaplan/mediaplan/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Campaign
	r.HandleFunc("/api/campaign", deps.CampaignHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/campaign", deps.CampaignHandler.Create).Methods("POST")
	r.HandleFunc("/api/campaign/{uid}", deps.CampaignHandler.Get).Methods("GET")
	r.HandleFunc("/api/campaign/{uid}", deps.CampaignHandler.Update).Methods("PUT")
	r.HandleFunc("/api/campaign/{uid}", deps.CampaignHandler.Delete).Methods("DELETE")

	// Line items per channel
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/item", deps.LineItemHandler.GetForChannel).Methods("GET")
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/item", deps.LineItemHandler.Create).Methods("POST")
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/item/{id}", deps.LineItemHandler.Update).Methods("PUT")
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/item/{id}", deps.LineItemHandler.Delete).Methods("DELETE")

	// Cash flow
	r.HandleFunc("/api/campaign/{uid}/cashflow", deps.CashflowHandler.GetCashflow).Methods("GET")

	// Schedule export
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/schedule/export", deps.ScheduleHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/campaign/{uid}/channel/{channel}/schedule/export-to-google", deps.GoogleHandler.ExportToSheets).Methods("POST")

	// Accruals
	r.HandleFunc("/api/campaign/{uid}/accruals", deps.AccrualHandler.GetAccruals).Methods("GET")
	r.HandleFunc("/api/campaign/{uid}/accruals/version/{version}", deps.AccrualHandler.SaveVersion).Methods("PUT")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
}

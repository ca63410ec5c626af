package app

import (
	"database/sql"

	"github.com/mediaplan/mediaplan/internal/config"
	"github.com/mediaplan/mediaplan/internal/event_bus"
	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/accrual"
	"github.com/mediaplan/mediaplan/pkg/campaign"
	"github.com/mediaplan/mediaplan/pkg/cashflow"
	"github.com/mediaplan/mediaplan/pkg/google"
	"github.com/mediaplan/mediaplan/pkg/lineitem"
	"github.com/mediaplan/mediaplan/pkg/schedule"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	CampaignRepo    campaign.Repository
	CampaignService campaign.Service
	CampaignHandler *campaign.Handler

	LineItemRepo    lineitem.Repository
	LineItemService lineitem.Service
	LineItemHandler *lineitem.Handler

	CashflowService cashflow.Service
	CashflowHandler *cashflow.Handler

	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	AccrualRepo    accrual.Repository
	AccrualService accrual.Service
	AccrualHandler *accrual.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.CampaignRepo = campaign.NewRepository(db)
	deps.CampaignService = campaign.NewService(deps.CampaignRepo, deps.EventBus)
	deps.CampaignHandler = campaign.NewHandler(deps.CampaignService)

	deps.LineItemRepo = lineitem.NewRepository(db)
	deps.LineItemService = lineitem.NewService(deps.LineItemRepo, deps.EventBus)
	deps.LineItemHandler = lineitem.NewHandler(deps.LineItemService)

	deps.CashflowService = cashflow.NewService(deps.CampaignService, deps.LineItemService)
	deps.CashflowHandler = cashflow.NewHandler(deps.CashflowService)

	deps.ScheduleService = schedule.NewService(deps.CampaignService, deps.LineItemService, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.AccrualRepo = accrual.NewRepository(db)
	deps.AccrualService = accrual.NewService(deps.AccrualRepo, deps.CampaignService, deps.LineItemService, deps.Clock)
	deps.AccrualHandler = accrual.NewHandler(deps.AccrualService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService, deps.ScheduleService)

	return deps
}

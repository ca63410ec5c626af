package google

import (
	"context"
	"fmt"

	"github.com/mediaplan/mediaplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var ErrUnathenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type ExportResult struct {
	SpreadsheetId  string
	SpreadsheetUrl string
}

type Service interface {
	// ExportSchedule writes the tabulated schedule to a spreadsheet tab named
	// after the channel. With an empty spreadsheetId a new spreadsheet is
	// created.
	ExportSchedule(ctx context.Context, s schedule.Schedule, spreadsheetId string) (ExportResult, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{
		auth: auth,
	}
}

func (s *ServiceImpl) ExportSchedule(ctx context.Context, sched schedule.Schedule, spreadsheetId string) (ExportResult, error) {
	service, err := s.prepareSheetsService(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	sheetTitle := string(sched.Channel)
	if spreadsheetId == "" {
		created, err := service.Spreadsheets.Create(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{
				Title: fmt.Sprintf("%s - %s", sched.Campaign.ClientName, sched.Campaign.Name),
			},
			Sheets: []*sheets.Sheet{
				{Properties: &sheets.SheetProperties{Title: sheetTitle}},
			},
		}).Context(ctx).Do()
		if err != nil {
			err := fmt.Errorf("unable to create spreadsheet: %v", err)
			log.Error(err)
			return ExportResult{}, err
		}
		spreadsheetId = created.SpreadsheetId
	}

	values := make([][]interface{}, 0, len(sched.Rows)+1)
	for _, row := range schedule.Tabulate(sched) {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	writeRange := fmt.Sprintf("%s!A1", sheetTitle)
	_, err = service.Spreadsheets.Values.Update(spreadsheetId, writeRange, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to write schedule to spreadsheet: %v", err)
		log.Error(err)
		return ExportResult{}, err
	}

	spreadsheet, err := service.Spreadsheets.Get(spreadsheetId).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve spreadsheet: %v", err)
		log.Error(err)
		return ExportResult{}, err
	}
	return ExportResult{
		SpreadsheetId:  spreadsheet.SpreadsheetId,
		SpreadsheetUrl: spreadsheet.SpreadsheetUrl,
	}, nil
}

func (s *ServiceImpl) prepareSheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := s.auth.getClient(ctx)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnathenticated
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Sheets client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}

package schedule

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/mediaplan/mediaplan/internal/utils"
	"github.com/mediaplan/mediaplan/pkg/channel"
	log "github.com/sirupsen/logrus"
)

// metadataColumns is the fixed width of the descriptive region before the
// date-grid columns begin. The export consumer relies on the grid starting at
// column 15 regardless of channel.
const metadataColumns = 14

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// RenderSchedule renders one channel's schedule as CSV: a channel-specific
// header row (grouping fields plus the financial columns, padded to the
// fixed metadata width), then one row per group with its bursts drawn as
// labels on the date grid.
func (r *CsvRendererImpl) RenderSchedule(s Schedule) (string, error) {
	data := Tabulate(s)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

// Tabulate lays the schedule out as rows of cells, shared between the CSV
// download and the Sheets export.
func Tabulate(s Schedule) [][]string {
	keyFields := channel.GroupingFields(s.Channel)

	header := make([]string, 0, metadataColumns+s.Grid.Days)
	for _, field := range keyFields {
		header = append(header, humanizeField(field))
	}
	for len(header) < metadataColumns-6 {
		header = append(header, "")
	}
	header = append(header, "Start Date", "End Date", "Budget", "Gross Media", "Fee %", "Deliverables")
	if len(header) != metadataColumns {
		// A channel with more grouping fields than the metadata region holds.
		log.Warnf("channel %s has %d metadata columns, expected %d", s.Channel, len(header), metadataColumns)
	}
	for col := 0; col < s.Grid.Days; col++ {
		header = append(header, s.Grid.Day(col).Format("02/01"))
	}

	data := make([][]string, 0, len(s.Rows)+1)
	data = append(data, header)
	for _, row := range s.Rows {
		data = append(data, tabulateRow(row, keyFields, s))
	}
	return data
}

func tabulateRow(row RowLayout, keyFields []string, s Schedule) []string {
	group := row.Group

	cells := make([]string, 0, metadataColumns+s.Grid.Days)
	for _, field := range keyFields {
		cells = append(cells, group.Item.Field(field))
	}
	for len(cells) < metadataColumns-6 {
		cells = append(cells, "")
	}
	cells = append(cells,
		group.GroupStartDate.Format("02/01/2006"),
		group.GroupEndDate.Format("02/01/2006"),
		utils.FormatCurrency(group.DeliverablesAmount),
		utils.FormatCurrency(group.GrossMedia),
		utils.FormatPercent(s.FeePercent),
		formatCount(group.TotalCalculatedDeliverables),
	)

	labelByColumn := make(map[int]string, len(row.Spans))
	for _, span := range row.Spans {
		labelByColumn[span.StartColumn] = formatCount(span.Label)
	}
	for col := 0; col < s.Grid.Days; col++ {
		cells = append(cells, labelByColumn[col])
	}
	return cells
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func humanizeField(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

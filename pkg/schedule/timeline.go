package schedule

import (
	"time"

	"github.com/mediaplan/mediaplan/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Grid is the campaign-wide date axis of the schedule export: one column per
// calendar day, padded outward to whole weeks (Sunday on or before the
// campaign start through the Sunday on or after the campaign end).
type Grid struct {
	Origin time.Time
	Days   int
}

func NewGrid(campaignStart, campaignEnd time.Time) Grid {
	start := utils.DateOnly(campaignStart)
	end := utils.DateOnly(campaignEnd)

	origin := start.AddDate(0, 0, -int(start.Weekday()))
	last := end
	if last.Weekday() != time.Sunday {
		last = last.AddDate(0, 0, 7-int(last.Weekday()))
	}
	return Grid{Origin: origin, Days: utils.DaysBetween(origin, last) + 1}
}

// Day returns the grid date for a column index.
func (g Grid) Day(column int) time.Time {
	return g.Origin.AddDate(0, 0, column)
}

// Span is one burst's horizontal bar on a row: inclusive column offsets into
// the grid plus the deliverable count shown as the bar's label.
type Span struct {
	StartColumn int
	EndColumn   int
	Label       float64
}

// RowLayout holds the placed spans for one grouped line item.
type RowLayout struct {
	Group *GroupedLineItem
	Spans []Span
}

// Layout places every group's bursts onto the grid.
//
// A burst lying even partially outside the grid is dropped, not truncated.
// Within a row, a burst whose columns intersect an already placed span is
// dropped rather than merged or stacked; overlapping bursts under the same
// grouping key would otherwise render on top of each other. Both drops are
// lossy and logged.
func Layout(groups []GroupedLineItem, grid Grid) []RowLayout {
	rows := make([]RowLayout, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		row := RowLayout{Group: group}

		for _, b := range group.Bursts {
			startColumn := utils.DaysBetween(grid.Origin, b.StartDate)
			endColumn := utils.DaysBetween(grid.Origin, b.EndDate)

			if startColumn < 0 || endColumn >= grid.Days {
				log.Warnf("dropping burst %s..%s: outside schedule grid %s..%s",
					b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
					grid.Origin.Format("2006-01-02"), grid.Day(grid.Days-1).Format("2006-01-02"))
				continue
			}
			if collides(row.Spans, startColumn, endColumn) {
				log.Warnf("dropping burst %s..%s: overlaps another burst in row %q",
					b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"), group.Key)
				continue
			}
			row.Spans = append(row.Spans, Span{
				StartColumn: startColumn,
				EndColumn:   endColumn,
				Label:       b.CalculatedValue,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func collides(placed []Span, startColumn, endColumn int) bool {
	for _, s := range placed {
		if startColumn <= s.EndColumn && endColumn >= s.StartColumn {
			return true
		}
	}
	return false
}

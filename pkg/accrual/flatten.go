package accrual

import (
	"fmt"
	"strings"

	"github.com/mediaplan/mediaplan/pkg/deliverables"
)

// ScheduleLine is one flattened (month, line item, amount) tuple extracted
// from a schedule payload.
type ScheduleLine struct {
	Month  MonthKey
	Key    string
	Name   string
	Amount float64
}

// Month-level service charges extracted as synthetic line items.
var serviceLineFields = []struct {
	field string
	name  string
}{
	{"adserving", "Adserving Fees"},
	{"production", "Production"},
	{"assembledFee", "Assembled Fee"},
}

// Flatten walks a loosely-structured schedule payload and extracts every line
// it can recognize. Payloads arrive in several historical shapes: a map of
// month label to month entry, or a list of month entries each carrying its
// own label. Within a month the line items may be grouped by media type,
// held in a flat list, or reduced to a single aggregate amount. Anything that
// matches no known shape yields no lines for that month rather than an error.
func Flatten(payload any) []ScheduleLine {
	var lines []ScheduleLine
	switch months := payload.(type) {
	case map[string]any:
		for label, entry := range months {
			lines = append(lines, flattenMonth(label, entry)...)
		}
	case []any:
		for _, raw := range months {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			label, _ := entry["month"].(string)
			lines = append(lines, flattenMonth(label, entry)...)
		}
	}
	return lines
}

func flattenMonth(label string, entry any) []ScheduleLine {
	month, ok := NormalizeMonth(label)
	if !ok {
		return nil
	}

	var lines []ScheduleLine
	switch e := entry.(type) {
	case map[string]any:
		if groups, ok := e["mediaTypes"].(map[string]any); ok {
			for mediaType, rawItems := range groups {
				items, ok := rawItems.([]any)
				if !ok {
					continue
				}
				for _, item := range items {
					if line, ok := flattenItem(month, mediaType, item); ok {
						lines = append(lines, line)
					}
				}
			}
		}
		if items, ok := e["lineItems"].([]any); ok {
			for _, item := range items {
				if line, ok := flattenItem(month, "", item); ok {
					lines = append(lines, line)
				}
			}
		}
		for _, service := range serviceLineFields {
			raw, present := e[service.field]
			if !present {
				continue
			}
			amount := parseAmount(raw)
			if amount == 0 {
				continue
			}
			lines = append(lines, ScheduleLine{
				Month:  month,
				Key:    strings.ToLower(service.name),
				Name:   service.name,
				Amount: amount,
			})
		}
	case float64, string:
		// single aggregate amount for the whole month
		if amount := parseAmount(e); amount != 0 {
			lines = append(lines, ScheduleLine{Month: month, Key: "total", Name: "Total", Amount: amount})
		}
	}
	return lines
}

func flattenItem(month MonthKey, mediaType string, raw any) (ScheduleLine, bool) {
	item, ok := raw.(map[string]any)
	if !ok {
		return ScheduleLine{}, false
	}
	name, _ := item["name"].(string)
	line := ScheduleLine{
		Month:  month,
		Key:    lineKey(item, mediaType),
		Name:   name,
		Amount: parseAmount(item["amount"]),
	}
	return line, true
}

// lineKey prefers an explicit line item id. Without one it falls back to the
// lowercased descriptive text, which collapses items whose text is identical.
func lineKey(item map[string]any, mediaType string) string {
	switch id := item["id"].(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%d", int64(id))
	}
	name, _ := item["name"].(string)
	header1, _ := item["header1"].(string)
	header2, _ := item["header2"].(string)
	if mediaType == "" {
		mediaType, _ = item["mediaType"].(string)
	}
	return strings.ToLower(strings.Join([]string{mediaType, header1, header2, name}, "|"))
}

func parseAmount(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case string:
		return deliverables.ParseAmount(v)
	default:
		return 0
	}
}

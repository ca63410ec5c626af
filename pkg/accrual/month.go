package accrual

import (
	"strings"
	"time"
)

// MonthKey is the normalized "YYYY-MM" month identifier all schedule lines
// are bucketed under.
type MonthKey string

// monthLayouts are tried in order. Month names are canonicalized to title
// case first, so "JANUARY 2025" and "january 2025" both parse.
var monthLayouts = []string{
	"2006-01",
	"01/2006",
	"1/2006",
	"January 2006",
	"Jan 2006",
	"200601",
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
}

// NormalizeMonth parses a month label in any of the shapes accrual schedules
// have been seen to carry and returns its normalized key. Unparsable labels
// report ok=false and are dropped by callers, never defaulted.
func NormalizeMonth(raw string) (MonthKey, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	candidate := titleCaseWords(trimmed)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return MonthKey(t.Format("2006-01")), true
		}
	}
	return "", false
}

func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

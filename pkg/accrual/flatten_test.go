package accrual

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return payload
}

func findLine(lines []ScheduleLine, key string) (ScheduleLine, bool) {
	for _, l := range lines {
		if l.Key == key {
			return l, true
		}
	}
	return ScheduleLine{}, false
}

func TestFlattenMediaTypeGroups(t *testing.T) {
	payload := decode(t, `{
		"January 2025": {
			"mediaTypes": {
				"Television": [
					{"id": "li-1", "name": "Sydney Metro", "amount": 1200.50},
					{"name": "Melbourne Metro", "header1": "Seven", "header2": "HSV", "amount": "$800.00"}
				]
			}
		}
	}`)

	lines := Flatten(payload)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	withId, ok := findLine(lines, "li-1")
	if !ok {
		t.Fatal("expected a line keyed by its explicit id")
	}
	if withId.Month != "2025-01" || withId.Amount != 1200.50 {
		t.Errorf("unexpected line %+v", withId)
	}
	derived, ok := findLine(lines, "television|seven|hsv|melbourne metro")
	if !ok {
		t.Fatalf("expected a line with a derived text key, got %+v", lines)
	}
	if derived.Amount != 800 {
		t.Errorf("currency string amount should parse, got %v", derived.Amount)
	}
}

func TestFlattenFlatListWithServiceLines(t *testing.T) {
	payload := decode(t, `[
		{
			"month": "02/2025",
			"lineItems": [{"id": 7, "name": "Search", "amount": 450}],
			"adserving": 120,
			"production": "1,000.00",
			"assembledFee": 0
		}
	]`)

	lines := Flatten(payload)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (item plus two service lines), got %d: %+v", len(lines), lines)
	}
	if _, ok := findLine(lines, "7"); !ok {
		t.Error("numeric ids should key as their decimal string")
	}
	adserving, ok := findLine(lines, "adserving fees")
	if !ok || adserving.Amount != 120 {
		t.Errorf("expected synthetic adserving line of 120, got %+v ok=%v", adserving, ok)
	}
	production, ok := findLine(lines, "production")
	if !ok || production.Amount != 1000 {
		t.Errorf("expected production line of 1000, got %+v ok=%v", production, ok)
	}
	if _, ok := findLine(lines, "assembled fee"); ok {
		t.Error("zero-amount service lines should not be extracted")
	}
}

func TestFlattenSingleAggregate(t *testing.T) {
	payload := decode(t, `{"2025-03": 9500}`)

	lines := Flatten(payload)

	if len(lines) != 1 {
		t.Fatalf("expected 1 aggregate line, got %d", len(lines))
	}
	if lines[0].Key != "total" || lines[0].Amount != 9500 || lines[0].Month != "2025-03" {
		t.Errorf("unexpected aggregate line %+v", lines[0])
	}
}

func TestFlattenDegradesOnUnknownShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unparsable month dropped", `{"not a month": {"lineItems": [{"name": "x", "amount": 10}]}}`},
		{"scalar payload", `42`},
		{"month entry of unknown shape", `{"2025-01": [1, 2, 3]}`},
		{"line item not an object", `{"2025-01": {"lineItems": ["oops"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if lines := Flatten(decode(t, tt.raw)); len(lines) != 0 {
				t.Errorf("expected no lines, got %+v", lines)
			}
		})
	}
}

package accrual

import (
	"math"
	"testing"
)

func version(number int, delivery, billing any) Version {
	return Version{
		ClientName:       "Acme Pty Ltd",
		CampaignName:     "Summer Launch",
		MbaNumber:        "MBA-7",
		VersionNumber:    number,
		DeliverySchedule: delivery,
		BillingSchedule:  billing,
	}
}

func TestReconcileComputesVariancePerLineItem(t *testing.T) {
	delivery := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{
				map[string]any{"id": "li-1", "name": "Sydney TV", "amount": 1000.0},
			},
		},
		"2025-02": map[string]any{
			"lineItems": []any{
				map[string]any{"id": "li-1", "name": "Sydney TV", "amount": 500.0},
			},
		},
	}
	billing := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{
				map[string]any{"id": "li-1", "name": "Sydney TV", "amount": 1200.0},
			},
		},
	}

	rows := Reconcile([]Version{version(1, delivery, billing)},
		[]MonthKey{"2025-01", "2025-02"}, nil)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	row := rows[0]
	if row.DeliveryAmount != 1500 || row.BillingAmount != 1200 || row.Difference != 300 {
		t.Errorf("unexpected amounts: %+v", row)
	}
	if row.MbaNumber != "MBA-7" || row.VersionNumber != 1 || row.LineItemName != "Sydney TV" {
		t.Errorf("row identity not carried: %+v", row)
	}
}

func TestReconcileFiltersBySelectedMonths(t *testing.T) {
	delivery := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{map[string]any{"id": "li-1", "name": "x", "amount": 100.0}},
		},
		"2025-02": map[string]any{
			"lineItems": []any{map[string]any{"id": "li-1", "name": "x", "amount": 900.0}},
		},
	}

	rows := Reconcile([]Version{version(1, delivery, nil)}, []MonthKey{"2025-01"}, nil)

	if len(rows) != 1 || rows[0].DeliveryAmount != 100 {
		t.Errorf("only the selected month should contribute, got %+v", rows)
	}
}

func TestReconcileExcludesClientPaysDelivery(t *testing.T) {
	delivery := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{map[string]any{"id": "li-1", "name": "x", "amount": 5000.0}},
		},
	}
	billing := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{map[string]any{"id": "li-1", "name": "x", "amount": 750.0}},
		},
	}

	rows := Reconcile([]Version{version(1, delivery, billing)},
		[]MonthKey{"2025-01"}, map[string]bool{"li-1": true})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].DeliveryAmount != 0 {
		t.Errorf("client-pays delivery must be excluded, got %v", rows[0].DeliveryAmount)
	}
	if rows[0].BillingAmount != 750 {
		t.Errorf("billing is never excluded, got %v", rows[0].BillingAmount)
	}
	if rows[0].Difference != -750 {
		t.Errorf("expected difference -750, got %v", rows[0].Difference)
	}
}

func TestReconcileCollapsesIdenticalDescriptiveText(t *testing.T) {
	// two entries with no id and identical text merge into one row
	delivery := map[string]any{
		"2025-01": map[string]any{
			"mediaTypes": map[string]any{
				"Television": []any{
					map[string]any{"name": "Sydney Metro", "amount": 100.0},
					map[string]any{"name": "Sydney Metro", "amount": 200.0},
				},
			},
		},
	}

	rows := Reconcile([]Version{version(1, delivery, nil)}, []MonthKey{"2025-01"}, nil)

	if len(rows) != 1 {
		t.Fatalf("identical descriptive text should collapse, got %d rows", len(rows))
	}
	if rows[0].DeliveryAmount != 300 {
		t.Errorf("expected merged delivery 300, got %v", rows[0].DeliveryAmount)
	}
}

func TestReconcileDifferenceSymmetry(t *testing.T) {
	delivery := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{
				map[string]any{"id": "a", "name": "a", "amount": 100.333},
				map[string]any{"id": "b", "name": "b", "amount": 250.005},
			},
		},
	}
	billing := map[string]any{
		"2025-01": map[string]any{
			"lineItems": []any{
				map[string]any{"id": "a", "name": "a", "amount": 99.999},
				map[string]any{"id": "c", "name": "c", "amount": 10.0},
			},
		},
	}

	rows := Reconcile([]Version{version(1, delivery, billing)},
		[]MonthKey{"2025-01"}, map[string]bool{"b": true})

	for _, row := range rows {
		if got := row.DeliveryAmount - row.BillingAmount; math.Abs(got-row.Difference) > 1e-9 {
			t.Errorf("row %q: difference %v does not equal delivery-billing %v",
				row.LineItemKey, row.Difference, got)
		}
		if row.DeliveryAmount != math.Round(row.DeliveryAmount*100)/100 {
			t.Errorf("row %q: delivery %v not rounded to 2dp", row.LineItemKey, row.DeliveryAmount)
		}
	}
	// rows sort by line item key within a version
	if len(rows) != 3 || rows[0].LineItemKey != "a" || rows[1].LineItemKey != "b" || rows[2].LineItemKey != "c" {
		t.Errorf("unexpected row set: %+v", rows)
	}
}

func TestReconcileVersionsStayApart(t *testing.T) {
	schedule := func(amount float64) map[string]any {
		return map[string]any{
			"2025-01": map[string]any{
				"lineItems": []any{map[string]any{"id": "li-1", "name": "x", "amount": amount}},
			},
		}
	}

	rows := Reconcile([]Version{
		version(1, schedule(100), nil),
		version(2, schedule(400), nil),
	}, []MonthKey{"2025-01"}, nil)

	if len(rows) != 2 {
		t.Fatalf("expected a row per version, got %d", len(rows))
	}
	if rows[0].VersionNumber != 1 || rows[1].VersionNumber != 2 {
		t.Errorf("rows should sort by version, got %+v", rows)
	}
	if rows[0].DeliveryAmount != 100 || rows[1].DeliveryAmount != 400 {
		t.Errorf("versions must not merge, got %+v", rows)
	}
}

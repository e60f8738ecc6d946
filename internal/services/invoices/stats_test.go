package invoices

import (
	"math"
	"testing"

	"invoice-management-backend/internal/gateway"
)

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.TotalInvoices != 0 {
		t.Errorf("total_invoices = %d, want 0", stats.TotalInvoices)
	}
	if stats.TotalAmount != 0 {
		t.Errorf("total_amount = %v, want 0", stats.TotalAmount)
	}
	if stats.AverageAmount != 0 {
		t.Errorf("average_amount = %v, want 0", stats.AverageAmount)
	}
	if stats.ByStatus == nil || len(stats.ByStatus) != 0 {
		t.Errorf("by_status = %v, want empty map", stats.ByStatus)
	}
	if stats.PaymentMethods == nil || len(stats.PaymentMethods) != 0 {
		t.Errorf("payment_methods = %v, want empty map", stats.PaymentMethods)
	}
}

func TestAggregateGroups(t *testing.T) {
	rows := []gateway.Row{
		{"amount": 100.0, "status": "paid", "payment_method": "card"},
		{"amount": 50.5, "status": "paid", "payment_method": "card"},
		{"amount": 25.0, "status": "pending"},
		{"amount": nil, "status": "cancelled", "payment_method": ""},
		{"status": "cancelled", "payment_method": "cash"},
		{"amount": 10.0}, // no status at all
	}

	stats := Aggregate(rows)

	if stats.TotalInvoices != 6 {
		t.Fatalf("total_invoices = %d, want 6", stats.TotalInvoices)
	}
	if stats.TotalAmount != 185.5 {
		t.Errorf("total_amount = %v, want 185.5", stats.TotalAmount)
	}

	// group counts add back up to the total
	countSum := 0
	amountSum := 0.0
	for _, g := range stats.ByStatus {
		countSum += g.Count
		amountSum += g.Amount
	}
	if countSum != stats.TotalInvoices {
		t.Errorf("sum of by_status counts = %d, want %d", countSum, stats.TotalInvoices)
	}
	if math.Abs(amountSum-185.5) > 1e-9 {
		t.Errorf("sum of by_status amounts = %v, want 185.5", amountSum)
	}

	methodSum := 0
	for _, n := range stats.PaymentMethods {
		methodSum += n
	}
	if methodSum != stats.TotalInvoices {
		t.Errorf("sum of payment_methods counts = %d, want %d", methodSum, stats.TotalInvoices)
	}

	if g := stats.ByStatus["paid"]; g == nil || g.Count != 2 || math.Abs(g.Amount-150.5) > 1e-9 {
		t.Errorf("by_status[paid] = %+v, want count 2 amount 150.5", g)
	}
	if g := stats.ByStatus["unknown"]; g == nil || g.Count != 1 {
		t.Errorf("by_status[unknown] = %+v, want count 1", g)
	}
	if stats.ByStatus["cancelled"].Count != 2 {
		t.Errorf("by_status[cancelled].Count = %d, want 2", stats.ByStatus["cancelled"].Count)
	}

	if stats.PaymentMethods["card"] != 2 {
		t.Errorf("payment_methods[card] = %d, want 2", stats.PaymentMethods["card"])
	}
	if stats.PaymentMethods["cash"] != 1 {
		t.Errorf("payment_methods[cash] = %d, want 1", stats.PaymentMethods["cash"])
	}
	// nil, "" and absent all count as not_set
	if stats.PaymentMethods["not_set"] != 3 {
		t.Errorf("payment_methods[not_set] = %d, want 3", stats.PaymentMethods["not_set"])
	}
}

func TestAggregateRoundsOnlyTopLevelAmounts(t *testing.T) {
	rows := []gateway.Row{
		{"amount": 10.004, "status": "paid"},
		{"amount": 10.004, "status": "paid"},
	}

	stats := Aggregate(rows)

	if stats.TotalAmount != 20.01 {
		t.Errorf("total_amount = %v, want 20.01", stats.TotalAmount)
	}
	if stats.AverageAmount != 10.0 {
		t.Errorf("average_amount = %v, want 10.0", stats.AverageAmount)
	}
	// the per-status amount keeps the raw sum
	raw := 10.004 + 10.004
	if got := stats.ByStatus["paid"].Amount; got != raw {
		t.Errorf("by_status[paid].Amount = %v, want unrounded %v", got, raw)
	}
}

func TestAggregateIntegerAmounts(t *testing.T) {
	rows := []gateway.Row{
		{"amount": int64(7), "status": "paid"},
		{"amount": 3, "status": "paid"},
	}

	stats := Aggregate(rows)
	if stats.TotalAmount != 10 {
		t.Errorf("total_amount = %v, want 10", stats.TotalAmount)
	}
	if stats.AverageAmount != 5 {
		t.Errorf("average_amount = %v, want 5", stats.AverageAmount)
	}
}

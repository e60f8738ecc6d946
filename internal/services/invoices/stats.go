package invoices

import (
	"encoding/json"
	"math"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
)

// Aggregate computes collection statistics in a single pass over raw store
// rows. Rows with no status land in the "unknown" group; rows with no payment
// method are counted under "not_set", a label that only ever exists in this
// output. Total and average are rounded to two decimals, per-status amounts
// stay unrounded.
func Aggregate(rows []gateway.Row) *models.InvoiceStats {
	stats := &models.InvoiceStats{
		ByStatus:       make(map[string]*models.StatusStats),
		PaymentMethods: make(map[string]int),
	}

	for _, row := range rows {
		stats.TotalInvoices++

		amount := numeric(row["amount"])
		stats.TotalAmount += amount

		status := stringField(row, "status", "unknown")
		group, ok := stats.ByStatus[status]
		if !ok {
			group = &models.StatusStats{}
			stats.ByStatus[status] = group
		}
		group.Count++
		group.Amount += amount

		method := stringField(row, "payment_method", "not_set")
		stats.PaymentMethods[method]++
	}

	if stats.TotalInvoices > 0 {
		stats.AverageAmount = round2(stats.TotalAmount / float64(stats.TotalInvoices))
	}
	stats.TotalAmount = round2(stats.TotalAmount)
	return stats
}

func stringField(row gateway.Row, key, fallback string) string {
	if s, ok := row[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

// StatusStats accumulates count and amount for one status group.
type StatusStats struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// InvoiceStats is the derived summary over the whole invoice collection.
// It is recomputed on every request and never persisted.
type InvoiceStats struct {
	TotalInvoices  int                     `json:"total_invoices"`
	TotalAmount    float64                 `json:"total_amount"`
	AverageAmount  float64                 `json:"average_amount"`
	ByStatus       map[string]*StatusStats `json:"by_status"`
	PaymentMethods map[string]int          `json:"payment_methods"`
}

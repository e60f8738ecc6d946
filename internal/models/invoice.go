package models

import (
	"encoding/json"
	"time"
)

// Invoice mirrors a row of the invoices table. The data gateway is the source
// of truth for ID, CreatedAt and UpdatedAt.
type Invoice struct {
	ID            int64      `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"` // e.g. "paid", "pending", "cancelled"
	Description   *string    `json:"description,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	LineItems     []LineItem `json:"line_items,omitempty"`
	IssueDate     *string    `json:"issue_date,omitempty"` // YYYY-MM-DD
	DueDate       *string    `json:"due_date,omitempty"`   // YYYY-MM-DD
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// LineItem is one billable position inside an invoice. Price and quantity are
// never reconciled against the parent invoice amount.
type LineItem struct {
	ID          *int64  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description,omitempty"`
	Currency    string  `json:"currency,omitempty"` // defaults to USD
	Type        *string `json:"type,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
}

// InvoiceFromRow decodes a gateway row into an Invoice via a JSON round trip,
// so the same coercions apply regardless of which backend produced the row.
func InvoiceFromRow(row map[string]any) (*Invoice, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var inv Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

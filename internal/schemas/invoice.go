package schemas

import (
	"encoding/json"
	"fmt"
	"time"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
)

const DateLayout = "2006-01-02"

// InvoiceCreate is the payload for POST /invoices. Status and payment_method
// are free-form strings on purpose.
type InvoiceCreate struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"required"`
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	Amount        *float64          `json:"amount" binding:"required"`
	Status        string            `json:"status" binding:"required"`
	Description   *string           `json:"description"`
	PaymentMethod *string           `json:"payment_method"`
	LineItems     []models.LineItem `json:"line_items"`
	IssueDate     *string           `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate       *string           `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// InvoiceUpdate is the payload for PUT /invoices/{id}. Every field is
// optional, and a field that was absent from the request body must stay
// distinguishable from one explicitly set to null, so decoding records which
// keys were present instead of relying on zero values.
type InvoiceUpdate struct {
	fields map[string]any
}

type fieldDecoder func(json.RawMessage) (any, error)

var updateDecoders = map[string]fieldDecoder{
	"customer_name":  decodeString,
	"customer_email": decodeString,
	"invoice_number": decodeString,
	"status":         decodeString,
	"description":    decodeString,
	"payment_method": decodeString,
	"amount":         decodeFloat,
	"line_items":     decodeLineItems,
	"issue_date":     decodeDate,
	"due_date":       decodeDate,
}

func (u *InvoiceUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.fields = make(map[string]any, len(raw))
	for name, msg := range raw {
		decode, known := updateDecoders[name]
		if !known {
			continue // unknown keys are ignored, not rejected
		}
		if string(msg) == "null" {
			u.fields[name] = nil
			continue
		}
		val, err := decode(msg)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		u.fields[name] = val
	}
	return nil
}

// Has reports whether the field appeared in the request body at all.
func (u *InvoiceUpdate) Has(field string) bool {
	_, ok := u.fields[field]
	return ok
}

// Changes returns only the fields that were present in the request, explicit
// nulls included.
func (u *InvoiceUpdate) Changes() gateway.Row {
	changes := make(gateway.Row, len(u.fields))
	for name, val := range u.fields {
		changes[name] = val
	}
	return changes
}

func (u *InvoiceUpdate) Empty() bool { return len(u.fields) == 0 }

func decodeString(msg json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeFloat(msg json.RawMessage) (any, error) {
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeLineItems(msg json.RawMessage) (any, error) {
	var items []models.LineItem
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if item.Currency == "" {
			item.Currency = "USD"
		}
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeDate(msg json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return nil, err
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD date: %w", err)
	}
	return s, nil
}

package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
	"invoice-management-backend/internal/schemas"
)

const table = "invoices"

// NotFoundError reports a lookup for an id the store has no row for.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Invoice with ID %d not found", e.ID)
}

// ErrNoFields means an update request carried no known fields at all.
var ErrNoFields = errors.New("no fields to update")

type Service struct {
	data gateway.DataGateway
	now  func() time.Time
}

func NewService(data gateway.DataGateway) *Service {
	return &Service{data: data, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]models.Invoice, error) {
	rows, err := s.data.Select(ctx, table, nil)
	if err != nil {
		return nil, err
	}

	out := make([]models.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := models.InvoiceFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	rows, err := s.data.Select(ctx, table, gateway.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return models.InvoiceFromRow(rows[0])
}

// Create resolves missing dates and hands the record to the store. The store
// assigns id and created_at.
func (s *Service) Create(ctx context.Context, in *schemas.InvoiceCreate) (*models.Invoice, error) {
	issue, due := ResolveDates(in.IssueDate, in.DueDate, s.now())

	record := gateway.Row{
		"customer_name":  in.CustomerName,
		"customer_email": in.CustomerEmail,
		"invoice_number": in.InvoiceNumber,
		"amount":         *in.Amount,
		"status":         in.Status,
		"description":    in.Description,
		"payment_method": in.PaymentMethod,
		"issue_date":     issue,
		"due_date":       due,
	}
	if in.LineItems != nil {
		items, err := lineItemRows(in.LineItems)
		if err != nil {
			return nil, err
		}
		record["line_items"] = items
	}

	rows, err := s.data.Insert(ctx, table, record)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("insert returned no row")
	}
	return models.InvoiceFromRow(rows[0])
}

// Update applies only the fields present in the request body; absent fields
// are never touched. The existence check and the update are separate store
// calls with nothing transactional between them.
func (s *Service) Update(ctx context.Context, id int64, in *schemas.InvoiceUpdate) (*models.Invoice, error) {
	existing, err := s.data.Select(ctx, table, gateway.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, &NotFoundError{ID: id}
	}

	if in.Empty() {
		return nil, ErrNoFields
	}

	rows, err := s.data.Update(ctx, table, in.Changes(), gateway.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("update returned no row")
	}
	return models.InvoiceFromRow(rows[0])
}

// Delete removes the invoice and returns the pre-deletion snapshot.
func (s *Service) Delete(ctx context.Context, id int64) (*models.Invoice, error) {
	existing, err := s.data.Select(ctx, table, gateway.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	snapshot, err := models.InvoiceFromRow(existing[0])
	if err != nil {
		return nil, err
	}

	if _, err := s.data.Delete(ctx, table, gateway.Filter{"id": id}); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Stats pulls the whole collection and aggregates it in-process.
func (s *Service) Stats(ctx context.Context) (*models.InvoiceStats, error) {
	rows, err := s.data.Select(ctx, table, nil)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

func lineItemRows(items []models.LineItem) ([]any, error) {
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

// Package gormstore implements the data gateway on a database owned by this
// deployment instead of a hosted backend. Postgres in production, sqlite in
// tests; either way the rest of the service still talks to the store through
// the same row-oriented gateway contract.
package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"invoice-management-backend/internal/gateway"
)

type Store struct {
	db *gorm.DB
}

type invoiceRecord struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string         `gorm:"index" json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	InvoiceNumber string         `gorm:"index" json:"invoice_number"`
	Amount        float64        `gorm:"index" json:"amount"`
	Status        string         `gorm:"index" json:"status"`
	Description   *string        `json:"description"`
	PaymentMethod *string        `json:"payment_method"`
	LineItems     datatypes.JSON `json:"line_items"`
	IssueDate     *string        `json:"issue_date"`
	DueDate       *string        `json:"due_date"`
	Created       time.Time      `gorm:"column:created_at" json:"created_at"`
	Updated       *time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

type userRecord struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         *string   `json:"name"`
	Created      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (userRecord) TableName() string { return "users" }

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection; tests pass an in-memory sqlite one.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&invoiceRecord{}, &userRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Select(ctx context.Context, table string, filter gateway.Filter) ([]gateway.Row, error) {
	switch table {
	case "invoices":
		var recs []invoiceRecord
		if err := s.scope(ctx, filter).Find(&recs).Error; err != nil {
			return nil, err
		}
		return toRows(recs)
	case "users":
		var recs []userRecord
		if err := s.scope(ctx, filter).Find(&recs).Error; err != nil {
			return nil, err
		}
		return toRows(recs)
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func (s *Store) Insert(ctx context.Context, table string, record gateway.Row) ([]gateway.Row, error) {
	switch table {
	case "invoices":
		var rec invoiceRecord
		if err := decodeRecord(record, &rec); err != nil {
			return nil, err
		}
		rec.Created = time.Now().UTC()
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return toRows([]invoiceRecord{rec})
	case "users":
		var rec userRecord
		if err := decodeRecord(record, &rec); err != nil {
			return nil, err
		}
		rec.Created = time.Now().UTC()
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return toRows([]userRecord{rec})
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func (s *Store) Update(ctx context.Context, table string, changes gateway.Row, filter gateway.Filter) ([]gateway.Row, error) {
	if table != "invoices" && table != "users" {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	norm := make(map[string]any, len(changes)+1)
	for col, val := range changes {
		switch val.(type) {
		case []any, map[string]any:
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("encode column %s: %w", col, err)
			}
			norm[col] = datatypes.JSON(raw)
		default:
			norm[col] = val
		}
	}
	if table == "invoices" {
		norm["updated_at"] = time.Now().UTC()
	}

	tx := s.db.WithContext(ctx).Table(table).Where(map[string]any(filter)).Updates(norm)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return s.Select(ctx, table, filter)
}

func (s *Store) Delete(ctx context.Context, table string, filter gateway.Filter) ([]gateway.Row, error) {
	snapshot, err := s.Select(ctx, table, filter)
	if err != nil {
		return nil, err
	}

	var model any
	switch table {
	case "invoices":
		model = &invoiceRecord{}
	case "users":
		model = &userRecord{}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	if err := s.db.WithContext(ctx).Where(map[string]any(filter)).Delete(model).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Store) scope(ctx context.Context, filter gateway.Filter) *gorm.DB {
	tx := s.db.WithContext(ctx)
	if len(filter) > 0 {
		tx = tx.Where(map[string]any(filter))
	}
	return tx
}

// decodeRecord moves a gateway row into a typed record through JSON, which
// also folds nested line_items into the JSON column.
func decodeRecord(record gateway.Row, dst any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func toRows[T any](recs []T) ([]gateway.Row, error) {
	rows := make([]gateway.Row, 0, len(recs))
	for _, rec := range recs {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		var row gateway.Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

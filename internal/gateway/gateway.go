// Package gateway defines the two external collaborators this service depends
// on: a tabular data store reached through a minimal equality-filter query
// interface, and an identity provider issuing and validating bearer tokens.
// Handlers and services only ever see these interfaces; the concrete backend
// is chosen at startup.
package gateway

import (
	"context"
	"errors"

	"invoice-management-backend/internal/models"
)

// Row is one record returned by the data store, keyed by column name.
type Row = map[string]any

// Filter is a set of column = value conditions, all of which must hold.
type Filter = map[string]any

// DataGateway is the narrow contract of the remote tabular store. Every
// mutation returns the affected rows as the store sees them after the call;
// the store, not the caller, assigns ids and timestamps.
type DataGateway interface {
	Select(ctx context.Context, table string, filter Filter) ([]Row, error)
	Insert(ctx context.Context, table string, record Row) ([]Row, error)
	Update(ctx context.Context, table string, changes Row, filter Filter) ([]Row, error)
	Delete(ctx context.Context, table string, filter Filter) ([]Row, error)
}

// IdentityGateway validates bearer tokens and issues sessions. User records
// live entirely on the provider side.
type IdentityGateway interface {
	SignUp(ctx context.Context, email, password string, name string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	VerifyToken(ctx context.Context, token string) (*models.AuthUser, error)
}

// ErrInvalidCredentials is returned by SignIn when the provider rejects the
// email/password pair, and by VerifyToken for a bad or expired token.
var ErrInvalidCredentials = errors.New("invalid credentials")

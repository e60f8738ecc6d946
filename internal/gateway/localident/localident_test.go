package localident

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/gateway/gormstore"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store, err := gormstore.New(db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return New(store, "test-secret")
}

func TestSignUpIssuesSession(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	session, err := p.SignUp(ctx, "user@acme.test", "hunter22", "Pat")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if session.AccessToken == "" || session.TokenType != "bearer" {
		t.Errorf("session = %+v", session)
	}
	if session.User.Email != "user@acme.test" || session.User.ID == "" {
		t.Errorf("user = %+v", session.User)
	}

	if _, err := p.SignUp(ctx, "user@acme.test", "other", ""); err == nil {
		t.Error("duplicate signup should fail")
	}
}

func TestSignInChecksPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "user@acme.test", "hunter22", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := p.SignIn(ctx, "user@acme.test", "hunter22"); err != nil {
		t.Errorf("signin with right password: %v", err)
	}
	if _, err := p.SignIn(ctx, "user@acme.test", "wrong"); !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := p.SignIn(ctx, "ghost@acme.test", "hunter22"); !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	session, err := p.SignUp(ctx, "user@acme.test", "hunter22", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := p.VerifyToken(ctx, session.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.ID != session.User.ID || user.Email != "user@acme.test" {
		t.Errorf("user = %+v", user)
	}

	if _, err := p.VerifyToken(ctx, session.AccessToken+"tampered"); !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Errorf("tampered token err = %v, want ErrInvalidCredentials", err)
	}

	other := newTestProvider(t)
	if _, err := other.VerifyToken(ctx, "not-a-jwt"); !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Errorf("garbage token err = %v, want ErrInvalidCredentials", err)
	}
}

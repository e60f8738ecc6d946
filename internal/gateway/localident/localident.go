// Package localident is an identity gateway for deployments without a hosted
// auth provider. Users live in a users table reached through the data
// gateway; tokens are HS256 JWTs signed with a deployment secret.
package localident

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
)

const usersTable = "users"

type Provider struct {
	data     gateway.DataGateway
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func New(data gateway.DataGateway, secret string) *Provider {
	return &Provider{
		data:     data,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		now:      time.Now,
	}
}

func (p *Provider) SignUp(ctx context.Context, email, password, name string) (*models.Session, error) {
	existing, err := p.data.Select(ctx, usersTable, gateway.Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(existing) > 0 {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	record := gateway.Row{
		"id":            uuid.New().String(),
		"email":         email,
		"password_hash": string(hash),
	}
	if name != "" {
		record["name"] = name
	}

	rows, err := p.data.Insert(ctx, usersTable, record)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("insert user: no row returned")
	}
	return p.issueSession(userFromRow(rows[0]))
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	rows, err := p.data.Select(ctx, usersTable, gateway.Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(rows) == 0 {
		return nil, gateway.ErrInvalidCredentials
	}

	hash, _ := rows[0]["password_hash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, gateway.ErrInvalidCredentials
	}
	return p.issueSession(userFromRow(rows[0]))
}

func (p *Provider) VerifyToken(ctx context.Context, tokenString string) (*models.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, gateway.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, gateway.ErrInvalidCredentials
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, gateway.ErrInvalidCredentials
	}

	rows, err := p.data.Select(ctx, usersTable, gateway.Filter{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(rows) == 0 {
		return nil, gateway.ErrInvalidCredentials
	}
	user := userFromRow(rows[0])
	return &user, nil
}

func (p *Provider) issueSession(user models.AuthUser) (*models.Session, error) {
	expiresAt := p.now().Add(p.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.Session{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(p.tokenTTL.Seconds()),
		User:        user,
	}, nil
}

func userFromRow(row gateway.Row) models.AuthUser {
	user := models.AuthUser{}
	user.ID, _ = row["id"].(string)
	user.Email, _ = row["email"].(string)
	user.CreatedAt, _ = row["created_at"].(string)
	return user
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/eskansoft/eskan_sales_app/internal/core/services"
	"github.com/eskansoft/eskan_sales_app/pkg/config"
)

func TestGenerateAccessToken(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "test-secret-key-for-token-tests",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "eskan-sales-app-test",
	}
	svc := services.NewTokenService(cfg)

	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "accountant1",
		Role:     domain.RoleAccountant,
	}

	signed, expiresAt, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	// The token must round-trip with the role claim intact.
	claims := &services.AccessClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, string(domain.RoleAccountant), claims.Role)
	assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
}

func TestGenerateAccessToken_RejectedWithWrongSecret(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "the-real-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "eskan-sales-app-test",
	}
	svc := services.NewTokenService(cfg)

	signed, _, err := svc.GenerateAccessToken(context.Background(), &domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleViewer,
	})
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &services.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret"), nil
	})
	assert.Error(t, err, "a token must not verify under another secret")
}

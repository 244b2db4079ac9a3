package jwt

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	want := auth.Claims{UserID: "u-1", EmployeeID: "e-1", CompanyID: "c-1", Role: auth.RoleManager}

	token, expiresAt, err := svc.GenerateAccessToken(want)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsManager())
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon")
	_, _, err := svc.GenerateAccessToken(auth.Claims{UserID: "u-1"})
	assert.Error(t, err)
}

func TestFromContext_MissingCompany(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	token, _, err := svc.GenerateAccessToken(auth.Claims{UserID: "u-1", Role: auth.RoleOwner})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	_, err = FromContext(jwtauth.NewContext(context.Background(), decoded, nil))
	assert.True(t, errors.Is(err, auth.ErrCompanyRequired))
}

func TestFromContext_NoToken(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.Error(t, err)
}

func TestNewContext(t *testing.T) {
	want := auth.Claims{UserID: "u-2", EmployeeID: "e-2", CompanyID: "c-2", Role: auth.RoleEmployee}

	ctx, err := NewContext(context.Background(), want)
	require.NoError(t, err)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.IsManager())
}

package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(claimsMap(claims, expiresAt))
	return tokenString, expiresAt, err
}

func claimsMap(claims auth.Claims, expiresAt int64) map[string]interface{} {
	m := map[string]interface{}{
		"user_id": claims.UserID,
		"role":    string(claims.Role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if claims.EmployeeID != "" {
		m["employee_id"] = claims.EmployeeID
	}
	if claims.CompanyID != "" {
		m["company_id"] = claims.CompanyID
	}
	return m
}

// NewContext stores claims in ctx the way jwtauth.Verifier stores a verified token.
func NewContext(ctx context.Context, claims auth.Claims) (context.Context, error) {
	token := jwt.New()
	for k, v := range claimsMap(claims, time.Now().Add(time.Hour).Unix()) {
		if err := token.Set(k, v); err != nil {
			return nil, fmt.Errorf("set claim %s: %w", k, err)
		}
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}

// FromContext extracts the caller identity placed in ctx by jwtauth.Verifier.
// A token without company_id is rejected; employee_id may be empty for owners.
func FromContext(ctx context.Context) (auth.Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return auth.Claims{}, auth.ErrCompanyRequired
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return auth.Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       auth.Role(role),
	}, nil
}

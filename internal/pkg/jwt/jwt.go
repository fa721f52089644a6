package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

// Service verifies access tokens. Tokens are issued by the identity service that shares
// the HS256 secret.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	Principal(ctx context.Context) (user.Principal, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) Principal(ctx context.Context) (user.Principal, error) {
	return PrincipalFromContext(ctx)
}

// PrincipalFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return user.Principal{}, user.ErrInvalidToken
	}
	return PrincipalFromClaims(claims)
}

// PrincipalFromClaims maps access-token claims onto a Principal.
// employee_id is optional; role and user_id are not.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != tokenTypeAccess {
		return user.Principal{}, user.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Principal{}, user.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Principal{}, user.ErrInvalidRole
	}

	employeeID, _ := claims["employee_id"].(string)

	return user.Principal{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}

// AccessClaims builds the claim set understood by PrincipalFromClaims.
func AccessClaims(p user.Principal, expiresAt time.Time) map[string]interface{} {
	claims := map[string]interface{}{
		"user_id": p.UserID,
		"role":    string(p.Role),
		"type":    tokenTypeAccess,
		"exp":     expiresAt.Unix(),
	}
	if p.EmployeeID != "" {
		claims["employee_id"] = p.EmployeeID
	}
	return claims
}

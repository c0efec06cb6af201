package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	derrors "attest/pkg/domain-errors"
)

// Claims represents the JWT claims for registry owner access tokens.
type Claims struct {
	OwnerRef string `json:"owner_ref"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation for the admin surface.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateOwnerToken issues a short-lived token naming the registry owner.
func (s *JWTService) GenerateOwnerToken(ownerRef string, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OwnerRef: ownerRef,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerRef,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, derrors.New(derrors.CodeUnauthorized, "token has expired")
		}
		return nil, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, derrors.New(derrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

package jwttoken

import (
	"attest/internal/platform/middleware"
)

// JWTServiceAdapter bridges the JWT service to the middleware's validator
// interface so the middleware does not import jwt types.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.OwnerClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.OwnerClaims{OwnerRef: claims.OwnerRef}, nil
}

package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/trackline/trackline-backend/auth"
	"github.com/trackline/trackline-backend/errs"
)

type keyType string

const (
	userIDKey keyType = "userID"
	claimsKey keyType = "claims"
)

// ctxWithIdentity stores the verified caller identity on the context.
func ctxWithIdentity(ctx context.Context, userID uuid.UUID, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxUserID retrieves the verified caller id from the context. It is
// only present on routes behind the auth middleware.
func ctxUserID(ctx context.Context) (uuid.UUID, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, errs.Unauthorized
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errs.Unauthorized
	}
	return userID, nil
}

// ctxClaims retrieves the full token claims from the context.
func ctxClaims(ctx context.Context) (*auth.Claims, error) {
	value := ctx.Value(claimsKey)
	if value == nil {
		return nil, errs.Unauthorized
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, errs.Unauthorized
	}
	return claims, nil
}

package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/auth"
)

type claimsKey struct{}

// ClaimsFrom returns the session claims the auth interceptor attached, or
// nil for anonymous calls.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// GetUserID returns the signed-in traveler's ID, or "".
func GetUserID(ctx context.Context) string {
	if claims := ClaimsFrom(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// RequireAuth rejects calls without a valid bearer token. Procedures in
// public are let through anonymously, though a valid token sent to them is
// still honored so the planner can personalize replies.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := jwtManager.ValidateHeader(req.Header().Get("Authorization"))
			if err == nil {
				return next(withClaims(ctx, claims), req)
			}
			if _, ok := open[req.Spec().Procedure]; ok {
				return next(ctx, req)
			}
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
	}
}

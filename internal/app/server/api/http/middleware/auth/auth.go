package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"agreementlog/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const OwnerIDKey contextKey = "ownerID"

// Middleware resolves the bearer token to an owner ID and stores it in the
// request context. Sessions are issued by the external login collaborator;
// this only validates them.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ctx.Header("Authorization")

		if len(token) < 7 || token[:7] != "Bearer " {
			a.unauthorized(ctx)
			return
		}

		ownerID, err := a.session.Validate(ctx.Context(), token[7:])
		if err != nil {
			a.log.Debug("session validation failed", "error", err)
			a.unauthorized(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), OwnerIDKey, ownerID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

// GetOwnerID extracts the authenticated owner from the request context.
func GetOwnerID(ctx context.Context) (int, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(int)
	return ownerID, ok
}

// WithOwnerID is the test hook for simulating an authenticated request.
func WithOwnerID(ctx context.Context, ownerID int) context.Context {
	return context.WithValue(ctx, OwnerIDKey, ownerID)
}

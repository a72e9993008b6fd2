package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	agreementAPI "agreementlog/internal/app/server/api/http/agreement"
	healthAPI "agreementlog/internal/app/server/api/http/health"
	"agreementlog/internal/app/server/api/http/middleware"
	"agreementlog/internal/app/server/api/http/middleware/auth"
	"agreementlog/internal/app/server/api/http/middleware/logger"
	serverCrypto "agreementlog/internal/app/server/crypto"
	"agreementlog/internal/domain/agreement"
	"agreementlog/internal/domain/session"
	"agreementlog/internal/infrastructure/anchor"
	"agreementlog/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health    *healthAPI.Handler
	Agreement *agreementAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, enc *serverCrypto.Encryptor, notifier *anchor.Notifier, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Agreement Log API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, enc, notifier, log)
	h.Health.SetupRoutes(API)
	h.Agreement.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, enc *serverCrypto.Encryptor, notifier *anchor.Notifier, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	agreementRepo := postgres.NewAgreementRepository(storage, log)
	agreementService := agreement.NewService(agreementRepo, enc, notifier, log)

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	authed := middlewares.GetAllAndClear()

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()

	agreementHandler := agreementAPI.NewHandler(agreementService, log, authed, public)

	return &Handlers{
		Health:    healthHandler,
		Agreement: agreementHandler,
	}
}

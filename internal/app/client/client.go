package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"agreementlog/internal/app/client/config"
	"agreementlog/internal/domain/agreement"
)

// App bundles everything the CLI commands need: server transport plus the
// local receipt store.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	receipts   *ReceiptStore
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	receipts, err := NewReceiptStore(cfg.ReceiptsPath)
	if err != nil {
		return nil, fmt.Errorf("open receipt store: %w", err)
	}

	return &App{
		config:     cfg,
		log:        log,
		httpClient: newHTTPClient(cfg, log),
		receipts:   receipts,
	}, nil
}

// CheckConnection verifies the server is reachable before running a command.
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// Commit logs an agreement on the server and records the returned hash
// locally so the user can look it up later.
func (a *App) Commit(ctx context.Context, text string, attachment []byte, category string) (string, string, error) {
	hash, warning, err := a.httpClient.CreateAgreement(ctx, text, attachment, category)
	if err != nil {
		return "", "", err
	}

	if err := a.receipts.Save(&Receipt{Hash: hash, Category: category, CreatedAt: time.Now()}); err != nil {
		a.log.Warn("failed to save local receipt", "error", err, "hash", hash)
	}

	return hash, warning, nil
}

// Lookup resolves a fingerprint hash to its agreement text.
func (a *App) Lookup(ctx context.Context, hash string) (string, error) {
	return a.httpClient.Lookup(ctx, hash)
}

// Countersign confirms an agreement under the given display name.
func (a *App) Countersign(ctx context.Context, hash, userName string) (string, error) {
	return a.httpClient.Countersign(ctx, hash, userName)
}

// Dashboard lists the agreements owned by the authenticated account.
func (a *App) Dashboard(ctx context.Context) ([]agreement.DashboardEntry, error) {
	return a.httpClient.Dashboard(ctx)
}

// Receipts lists locally stored commit receipts, newest first.
func (a *App) Receipts() ([]*Receipt, error) {
	return a.receipts.List()
}

func (a *App) Shutdown() {
	if err := a.receipts.Close(); err != nil {
		a.log.Warn("failed to close receipt store", "error", err)
	}
}

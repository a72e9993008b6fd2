package anchor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/slog"
)

// payload is the anchoring service's request contract. The field names are
// load-bearing: downstream on-chain publishing expects exactly this shape.
type payload struct {
	AgreementHash string `json:"agreementHash"`
	Timestamp     int64  `json:"timestamp"`
}

// Notifier posts hash+timestamp pairs to the external anchoring service.
// Calls are best-effort and bounded: a per-attempt HTTP timeout plus a small
// capped exponential backoff, so a slow anchor can never hold a request
// indefinitely. The caller decides what a failure means; here it is only an
// error value.
type Notifier struct {
	url        string
	client     *http.Client
	maxRetries uint64
	log        *slog.Logger
}

func New(url string, timeout time.Duration, maxRetries int, log *slog.Logger) *Notifier {
	return &Notifier{
		url:        url,
		client:     &http.Client{Timeout: timeout},
		maxRetries: uint64(maxRetries),
		log:        log.With("component", "anchor_notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, hash string, unixTimestamp int64) error {
	body, err := json.Marshal(payload{AgreementHash: hash, Timestamp: unixTimestamp})
	if err != nil {
		return fmt.Errorf("marshal anchor payload: %w", err)
	}

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("anchor service returned %s", resp.Status)
		case resp.StatusCode >= http.StatusBadRequest:
			// The service understood us and said no; retrying won't help.
			return backoff.Permanent(fmt.Errorf("anchor service rejected request: %s", resp.Status))
		}
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), n.maxRetries), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		n.log.Warn("anchor notification failed", "hash", hash, "error", err)
		return fmt.Errorf("notify anchor: %w", err)
	}

	n.log.Debug("anchored", "hash", hash, "timestamp", unixTimestamp)
	return nil
}

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"agreementlog/internal/app/client/config"
	"agreementlog/internal/domain/agreement"
)

type httpClient struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
		baseURL: scheme + cfg.ServerAddress,
		token:   cfg.Token,
	}
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

// CreateAgreement commits an agreement and returns its fingerprint hash plus
// any anchor warning the server attached.
func (h *httpClient) CreateAgreement(ctx context.Context, text string, attachment []byte, category string) (string, string, error) {
	body := map[string]string{"agreement_text": text}
	if len(attachment) > 0 {
		body["attachment"] = base64.StdEncoding.EncodeToString(attachment)
	}
	if category != "" {
		body["category"] = category
	}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/agreements", body)
	if err != nil {
		return "", "", err
	}

	var out struct {
		Success bool   `json:"success"`
		Hash    string `json:"hash"`
		Message string `json:"message"`
		Warning string `json:"warning"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", "", err
	}
	if !out.Success {
		return "", "", errors.New(out.Message)
	}
	return out.Hash, out.Warning, nil
}

// Lookup resolves a hash to decrypted agreement text.
func (h *httpClient) Lookup(ctx context.Context, hash string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/agreements/lookup", map[string]string{"hash": hash})
	if err != nil {
		return "", err
	}

	var out struct {
		Status        string `json:"status"`
		AgreementText string `json:"agreementText"`
		Message       string `json:"message"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	if out.Status != "success" {
		return "", errors.New(out.Message)
	}
	return out.AgreementText, nil
}

// Countersign confirms a pending agreement under the given display name.
func (h *httpClient) Countersign(ctx context.Context, hash, userName string) (string, error) {
	body := map[string]string{"hash": hash, "userName": userName}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/agreements/countersign", body)
	if err != nil {
		return "", err
	}

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Warning string `json:"warning"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", errors.New(out.Message)
	}
	return out.Warning, nil
}

// Dashboard fetches the owner's agreements.
func (h *httpClient) Dashboard(ctx context.Context) ([]agreement.DashboardEntry, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/agreements", nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Status     string                     `json:"status"`
		Agreements []agreement.DashboardEntry `json:"agreements"`
		Message    string                     `json:"message"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, errors.New(out.Message)
	}
	return out.Agreements, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

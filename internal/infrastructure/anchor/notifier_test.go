package anchor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifier_PayloadContract(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, time.Second, 1, testLogger())
	err := n.Notify(context.Background(), "deadbeef", 1742040000)

	assert.NoError(t, err)
	assert.Equal(t, "deadbeef", got["agreementHash"])
	assert.Equal(t, float64(1742040000), got["timestamp"])
	assert.Len(t, got, 2, "payload carries exactly agreementHash and timestamp")
}

func TestNotifier_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, time.Second, 3, testLogger())
	err := n.Notify(context.Background(), "deadbeef", 1)

	assert.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNotifier_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := New(srv.URL, time.Second, 3, testLogger())
	err := n.Notify(context.Background(), "deadbeef", 1)

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestNotifier_UnreachableService(t *testing.T) {
	// Reserved port with nothing listening.
	n := New("http://127.0.0.1:1", 100*time.Millisecond, 1, testLogger())

	err := n.Notify(context.Background(), "deadbeef", 1)

	assert.Error(t, err)
}

func TestNotifier_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	n := New(srv.URL, time.Second, 3, testLogger())
	err := n.Notify(ctx, "deadbeef", 1)

	assert.Error(t, err)
}

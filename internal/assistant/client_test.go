package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-model", srv.URL)
}

func TestExplainQueue_Success(t *testing.T) {
	var gotBody chatRequest
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"- triage SEC-1 first"}}]}`))
	})

	answer, err := c.ExplainQueue(context.Background(), "what first?", "=== SECURITY ===")
	require.NoError(t, err)
	require.Equal(t, "- triage SEC-1 first", answer)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	require.Contains(t, gotBody.Messages[1].Content, "what first?")
	require.Contains(t, gotBody.Messages[1].Content, "=== SECURITY ===")
}

func TestExplainQueue_MissingAPIKey(t *testing.T) {
	c := NewClient("", "m", "http://unused.invalid")
	_, err := c.ExplainQueue(context.Background(), "q", "")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestExplainQueue_PaymentRequired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	_, err := c.ExplainQueue(context.Background(), "q", "")
	require.ErrorIs(t, err, ErrPaymentRequired)
}

func TestExplainQueue_NonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := c.ExplainQueue(context.Background(), "q", "")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusTooManyRequests, se.Code)
	require.Contains(t, se.Body, "rate limited")
}

func TestExplainQueue_EmptyReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	})
	_, err := c.ExplainQueue(context.Background(), "q", "")
	require.ErrorIs(t, err, ErrEmptyReply)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err = c.ExplainQueue(context.Background(), "q", "")
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestExplainQueue_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ExplainQueue(ctx, "q", "")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestContextBlock_CapsRows(t *testing.T) {
	type row struct {
		Key string `json:"key"`
	}
	rows := make([]row, 45)
	for i := range rows {
		rows[i] = row{Key: "SEC"}
	}

	block := ContextBlock("SECURITY", rows)
	require.Contains(t, block, "=== SECURITY (45 rows, first 30 shown) ===")
	require.Equal(t, SnapshotLimit, strings.Count(block, `{"key":"SEC"}`))
}

func TestContextBlock_SmallQueue(t *testing.T) {
	type row struct {
		Key string `json:"key"`
	}
	block := ContextBlock("IT", []row{{Key: "REQ-1"}})
	require.Contains(t, block, "=== IT (1 rows) ===")
	require.Contains(t, block, `{"key":"REQ-1"}`)
}

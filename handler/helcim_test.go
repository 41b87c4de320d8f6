package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_manager/model"
)

func helcimTestClient(srv *httptest.Server) *HelcimClient {
	return &HelcimClient{BaseURL: srv.URL, HTTP: &http.Client{Timeout: 2 * time.Second}}
}

func TestInitializeSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/helcim-pay/initialize", r.URL.Path)
		require.Equal(t, "merchant-token", r.Header.Get("api-token"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"checkoutToken":"chk_123","secretToken":"sec_456"}`))
	}))
	defer srv.Close()

	client := helcimTestClient(srv)
	session, err := client.InitializeSession(context.Background(), "merchant-token", decimal.RequireFromString("11.74"), "USD")
	require.NoError(t, err)
	assert.Equal(t, "chk_123", session.CheckoutToken)
	assert.Equal(t, "sec_456", session.SecretToken)
}

func TestInitializeSessionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := helcimTestClient(srv)
	_, err := client.InitializeSession(context.Background(), "bad-token", decimal.RequireFromString("1"), "USD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrProcessorUnavailable))
}

func TestInitializeSessionMissingTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"checkoutToken":"chk_123"}`))
	}))
	defer srv.Close()

	client := helcimTestClient(srv)
	_, err := client.InitializeSession(context.Background(), "merchant-token", decimal.RequireFromString("1"), "USD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrProcessorUnavailable))
}

func TestTransactionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/card-transactions/txn_789", r.URL.Path)
		w.Write([]byte(`{"transactionId":"txn_789","status":"APPROVED","amount":"11.74","currency":"USD","cardType":"VISA"}`))
	}))
	defer srv.Close()

	client := helcimTestClient(srv)
	txn, err := client.TransactionStatus(context.Background(), "merchant-token", "txn_789")
	require.NoError(t, err)
	assert.True(t, txn.Approved())
	assert.Equal(t, "VISA", txn.CardBrand)
}

func TestTransactionStatusDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transactionId":"txn_789","status":"DECLINED"}`))
	}))
	defer srv.Close()

	client := helcimTestClient(srv)
	txn, err := client.TransactionStatus(context.Background(), "merchant-token", "txn_789")
	require.NoError(t, err)
	assert.False(t, txn.Approved())
}

func TestVerifyResponseHash(t *testing.T) {
	sum := sha256.Sum256([]byte("txn_789" + "sec_456"))
	good := hex.EncodeToString(sum[:])

	assert.True(t, VerifyResponseHash("txn_789", "sec_456", good))
	assert.False(t, VerifyResponseHash("txn_789", "sec_456", "deadbeef"))
	assert.False(t, VerifyResponseHash("txn_000", "sec_456", good))
	assert.False(t, VerifyResponseHash("txn_789", "other-secret", good))
	assert.False(t, VerifyResponseHash("txn_789", "sec_456", ""))
}

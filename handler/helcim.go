package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"pos_manager/config"
	"pos_manager/model"
)

// Helcim client. Wraps the two HelcimPay endpoints the coordinator needs:
// session initialize and the card-transaction status lookup. The merchant api
// token comes from the organization row per request; nothing merchant-scoped
// is cached here.
type HelcimClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHelcimClient() *HelcimClient {
	base := config.Config("HELCIM_API_URL")
	if base == "" {
		base = "https://api.helcim.com"
	}
	return &HelcimClient{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type helcimInitializeRequest struct {
	PaymentType string      `json:"paymentType"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
}

// InitializeSession requests a new HelcimPay checkout session scoped to one
// amount. Upstream failures come back wrapped in ErrProcessorUnavailable so
// callers retry with backoff instead of treating them as terminal.
func (h *HelcimClient) InitializeSession(ctx context.Context, apiToken string, amount decimal.Decimal, currency string) (*model.HelcimSession, error) {
	payload, err := json.Marshal(helcimInitializeRequest{
		PaymentType: "purchase",
		Amount:      json.Number(amount.StringFixed(2)),
		Currency:    currency,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.BaseURL+"/v2/helcim-pay/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-token", apiToken)

	resp, err := h.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize: %v", model.ErrProcessorUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize: %v", model.ErrProcessorUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: initialize returned %d", model.ErrProcessorUnavailable, resp.StatusCode)
	}

	var session model.HelcimSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: initialize: bad response body", model.ErrProcessorUnavailable)
	}
	if session.CheckoutToken == "" || session.SecretToken == "" {
		return nil, fmt.Errorf("%w: initialize: missing tokens", model.ErrProcessorUnavailable)
	}
	return &session, nil
}

// TransactionStatus fetches the authoritative transaction record. This is the
// second check behind the response hash: even a correctly signed callback is
// only trusted after the processor itself reports the transaction approved.
func (h *HelcimClient) TransactionStatus(ctx context.Context, apiToken, transactionID string) (*model.HelcimTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		h.BaseURL+"/v2/card-transactions/"+transactionID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-token", apiToken)

	resp, err := h.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction status: %v", model.ErrProcessorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: transaction status returned %d", model.ErrProcessorUnavailable, resp.StatusCode)
	}

	var txn model.HelcimTransaction
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return nil, fmt.Errorf("%w: transaction status: bad response body", model.ErrProcessorUnavailable)
	}
	return &txn, nil
}

// VerifyResponseHash checks the HelcimPay callback signature: SHA-256 over
// the transaction id concatenated with the session secret token, hex encoded.
// The comparison is constant time.
func VerifyResponseHash(transactionID, secretToken, responseHash string) bool {
	sum := sha256.Sum256([]byte(transactionID + secretToken))
	expected := hex.EncodeToString(sum[:])
	return hmac.Equal([]byte(expected), []byte(responseHash))
}

package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_manager/cache"
	"pos_manager/constants"
	"pos_manager/model"
)

type fakeStore struct {
	orders   map[uint]*model.Order
	org      *model.Organization
	payments []*model.Payment
	nextID   uint
}

func (s *fakeStore) GetOrder(orgID, orderID uint) (*model.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.OrganizationID != orgID {
		return nil, model.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeStore) GetOrganization(orgID uint) (*model.Organization, error) {
	if s.org == nil || s.org.ID != orgID {
		return nil, errors.New("organization not found")
	}
	return s.org, nil
}

func (s *fakeStore) CompletedPayment(orderID uint) (*model.Payment, error) {
	for _, p := range s.payments {
		if p.OrderID == orderID && p.Status == constants.PaymentCompleted {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CompleteCardPayment(order *model.Order, payment *model.Payment) error {
	stored, ok := s.orders[order.ID]
	if !ok || stored.Status != constants.OrderPending {
		return model.ErrInvalidStateTransition
	}
	if err := stored.Transition(constants.OrderPaid, time.Now()); err != nil {
		return err
	}
	s.nextID++
	payment.ID = s.nextID
	now := time.Now()
	payment.ProcessedAt = &now
	s.payments = append(s.payments, payment)
	*order = *stored
	return nil
}

type fakeProcessor struct {
	session     *model.HelcimSession
	sessionErr  error
	txn         *model.HelcimTransaction
	txnErr      error
	initCalls   int
	statusCalls int
}

func (p *fakeProcessor) InitializeSession(ctx context.Context, apiToken string, amount decimal.Decimal, currency string) (*model.HelcimSession, error) {
	p.initCalls++
	return p.session, p.sessionErr
}

func (p *fakeProcessor) TransactionStatus(ctx context.Context, apiToken, transactionID string) (*model.HelcimTransaction, error) {
	p.statusCalls++
	return p.txn, p.txnErr
}

type fakeSessions struct {
	sessions map[uint]model.PaymentSession
}

func (s *fakeSessions) SaveSession(ctx context.Context, session model.PaymentSession) error {
	s.sessions[session.OrderID] = session
	return nil
}

func (s *fakeSessions) GetSession(ctx context.Context, orderID uint) (*model.PaymentSession, error) {
	session, ok := s.sessions[orderID]
	if !ok {
		return nil, cache.ErrSessionNotFound
	}
	return &session, nil
}

func (s *fakeSessions) DeleteSession(ctx context.Context, orderID uint) error {
	delete(s.sessions, orderID)
	return nil
}

func paymentFixture() (*PaymentCoordinator, *fakeStore, *fakeProcessor, *fakeSessions) {
	store := &fakeStore{
		orders: map[uint]*model.Order{
			7: {
				DTO:            model.DTO{ID: 7},
				OrganizationID: 1,
				OrderNumber:    "ORD-20250830-7KQ2MX",
				TotalAmount:    decimal.RequireFromString("11.74"),
				Status:         constants.OrderPending,
				PaymentStatus:  constants.PaymentUnpaid,
			},
		},
		org: &model.Organization{
			DTO:            model.DTO{ID: 1},
			Name:           "Demo Coffee Co",
			Currency:       "USD",
			HelcimAPIToken: "merchant-token",
		},
	}
	processor := &fakeProcessor{
		session: &model.HelcimSession{CheckoutToken: "chk_123", SecretToken: "sec_456"},
		txn:     &model.HelcimTransaction{TransactionID: "txn_789", Status: "APPROVED"},
	}
	sessions := &fakeSessions{sessions: make(map[uint]model.PaymentSession)}
	return NewPaymentCoordinator(store, processor, sessions, nil), store, processor, sessions
}

func signedHash(transactionID, secret string) string {
	sum := sha256.Sum256([]byte(transactionID + secret))
	return hex.EncodeToString(sum[:])
}

func TestInitializeStoresSession(t *testing.T) {
	pc, _, _, sessions := paymentFixture()

	result, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID:  7,
		Amount:   "11.74",
		Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "chk_123", result.CheckoutToken)
	assert.Equal(t, "sec_456", result.SecretToken)

	saved, ok := sessions.sessions[7]
	require.True(t, ok)
	assert.Equal(t, "sec_456", saved.SecretToken)
	assert.True(t, saved.Amount.Equal(decimal.RequireFromString("11.74")))
}

func TestInitializeAmountMismatch(t *testing.T) {
	pc, _, processor, _ := paymentFixture()

	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 7, Amount: "10.00", Currency: "USD",
	})
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Zero(t, processor.initCalls)
}

func TestInitializeOrderNotFound(t *testing.T) {
	pc, _, _, _ := paymentFixture()

	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 999, Amount: "11.74", Currency: "USD",
	})
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))

	// another organization's order must read as missing, not as forbidden
	_, err = pc.Initialize(context.Background(), 2, model.InitializePaymentInput{
		OrderID: 7, Amount: "11.74", Currency: "USD",
	})
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))
}

func TestInitializePaidOrderConflicts(t *testing.T) {
	pc, store, _, _ := paymentFixture()
	store.orders[7].Status = constants.OrderPaid

	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 7, Amount: "11.74", Currency: "USD",
	})
	assert.True(t, errors.Is(err, model.ErrOrderNotPending))
}

func TestInitializeUnconfiguredOrganization(t *testing.T) {
	pc, store, _, _ := paymentFixture()
	store.org.HelcimAPIToken = ""

	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 7, Amount: "11.74", Currency: "USD",
	})
	assert.True(t, errors.Is(err, model.ErrOrgNotConfigured))
}

func TestInitializeProcessorDown(t *testing.T) {
	pc, _, processor, sessions := paymentFixture()
	processor.session = nil
	processor.sessionErr = model.ErrProcessorUnavailable

	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 7, Amount: "11.74", Currency: "USD",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrProcessorUnavailable))
	assert.Empty(t, sessions.sessions)
}

func validatedFixture(t *testing.T) (*PaymentCoordinator, *fakeStore, *fakeProcessor, *fakeSessions) {
	pc, store, processor, sessions := paymentFixture()
	_, err := pc.Initialize(context.Background(), 1, model.InitializePaymentInput{
		OrderID: 7, Amount: "11.74", Currency: "USD",
	})
	require.NoError(t, err)
	return pc, store, processor, sessions
}

func TestValidateSettlesOrder(t *testing.T) {
	pc, store, _, sessions := validatedFixture(t)

	result, err := pc.Validate(context.Background(), 1, model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  signedHash("txn_789", "sec_456"),
		CardLastFour:  "4242",
		CardBrand:     "VISA",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, constants.OrderPaid, result.OrderStatus)

	assert.Equal(t, constants.OrderPaid, store.orders[7].Status)
	assert.Equal(t, constants.PaymentCompleted, store.orders[7].PaymentStatus)
	require.Len(t, store.payments, 1)
	assert.Equal(t, "txn_789", store.payments[0].HelcimTransactionID)
	assert.Equal(t, "4242", store.payments[0].CardLastFour)

	// session is single use
	assert.Empty(t, sessions.sessions)
}

func TestValidateHashMismatchLeavesOrderPending(t *testing.T) {
	pc, store, processor, _ := validatedFixture(t)

	_, err := pc.Validate(context.Background(), 1, model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  "forged",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrHashMismatch))

	// a bad hash must never reach the processor or touch the order
	assert.Zero(t, processor.statusCalls)
	assert.Equal(t, constants.OrderPending, store.orders[7].Status)
	assert.Empty(t, store.payments)
}

func TestValidateWithoutSession(t *testing.T) {
	pc, store, _, _ := paymentFixture()

	_, err := pc.Validate(context.Background(), 1, model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  signedHash("txn_789", "sec_456"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrHashMismatch))
	assert.Equal(t, constants.OrderPending, store.orders[7].Status)
}

func TestValidateDeclinedTransaction(t *testing.T) {
	pc, store, processor, _ := validatedFixture(t)
	processor.txn = &model.HelcimTransaction{TransactionID: "txn_789", Status: "DECLINED"}

	_, err := pc.Validate(context.Background(), 1, model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  signedHash("txn_789", "sec_456"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPaymentNotApproved))
	assert.Equal(t, constants.OrderPending, store.orders[7].Status)
	assert.Empty(t, store.payments)
}

func TestValidateIsIdempotent(t *testing.T) {
	pc, store, _, sessions := validatedFixture(t)

	input := model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  signedHash("txn_789", "sec_456"),
	}
	first, err := pc.Validate(context.Background(), 1, input)
	require.NoError(t, err)

	// processor retries the callback after the session is gone
	second, err := pc.Validate(context.Background(), 1, input)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, constants.OrderPaid, second.OrderStatus)
	assert.Equal(t, first.PaymentID, second.PaymentID)

	require.Len(t, store.payments, 1)
	assert.Empty(t, sessions.sessions)
}

func TestValidateCancelledOrderConflicts(t *testing.T) {
	pc, store, _, _ := validatedFixture(t)
	store.orders[7].Status = constants.OrderCancelled

	_, err := pc.Validate(context.Background(), 1, model.ValidatePaymentInput{
		OrderID:       7,
		TransactionID: "txn_789",
		ResponseHash:  signedHash("txn_789", "sec_456"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidStateTransition))
}

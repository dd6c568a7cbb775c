package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitcoin-wallet/internal/adapter/http/dto"
	"bitcoin-wallet/internal/adapter/http/middleware"
	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/internal/core/ports/mocks"
	"bitcoin-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "missing data envelope: %s", w.Body.String())
	return data
}

// --- Auth handler ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Username: "satoshi",
		Password: "correct-horse",
	}).Return(&ports.RegisterResponse{UserID: 1, APIKey: "key_new"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/auth/register",
		dto.RegisterRequest{Username: "satoshi", Password: "correct-horse"})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(1), data["user_id"])
	assert.Equal(t, "key_new", data["api_key"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{})

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrUsernameTaken())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/auth/register",
		dto.RegisterRequest{Username: "satoshi", Password: "correct-horse"})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "satoshi", "correct-horse").
		Return(&ports.LoginResponse{UserID: 1, APIKey: "key_a", Token: "jwt", ExpiresAt: expiry}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{Username: "satoshi", Password: "correct-horse"})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "jwt", data["token"])
	assert.Equal(t, "key_a", data["api_key"])
}

// --- Wallet handler ---

func walletCtx(t *testing.T, w *httptest.ResponseRecorder, userID int64, req *http.Request, params ...gin.Param) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.CtxUserID, userID)
	c.Params = params
	return c
}

func TestWalletCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	mockLedger.EXPECT().CreateWallet(gomock.Any(), int64(1)).
		Return(&domain.Wallet{Address: "addr1", OwnerID: 1, Balance: decimal.Zero, CreatedAt: time.Now()}, nil)

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 1, httptest.NewRequest(http.MethodPost, "/api/v1/wallets", nil))

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "addr1", data["address"])
	assert.Equal(t, "0", data["balance"])
}

func TestWalletGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	mockLedger.EXPECT().GetWallet(gomock.Any(), int64(1), "missing").
		Return(nil, apperror.ErrWalletNotFound())

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 1,
		httptest.NewRequest(http.MethodGet, "/api/v1/wallets/missing", nil),
		gin.Param{Key: "address", Value: "missing"})

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "WAL_001")
}

func TestDeposit_Applied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	txn := &domain.Transaction{
		ID:          uuid.New(),
		FromAddress: domain.DepositSource,
		ToAddress:   "addr1",
		Amount:      decimal.NewFromInt(4),
		Fee:         decimal.Zero,
		CreatedAt:   time.Now(),
	}
	mockLedger.EXPECT().
		Deposit(gomock.Any(), int64(1), "addr1", decimalEq(decimal.NewFromInt(100))).
		Return(&ports.OperationResult{Applied: true, Transaction: txn}, nil)

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 1,
		jsonRequest(t, http.MethodPost, "/api/v1/wallets/addr1/deposit", dto.AmountRequest{Amount: 100}),
		gin.Param{Key: "address", Value: "addr1"})

	h.Deposit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, true, data["applied"])
	require.NotNil(t, data["transaction"])
}

func TestWithdraw_InsufficientFundsIsOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	mockLedger.EXPECT().
		Withdraw(gomock.Any(), int64(1), "addr1", gomock.Any()).
		Return(&ports.OperationResult{Applied: false, Reason: ports.RejectInsufficientFunds}, nil)

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 1,
		jsonRequest(t, http.MethodPost, "/api/v1/wallets/addr1/withdraw", dto.AmountRequest{Amount: 999}),
		gin.Param{Key: "address", Value: "addr1"})

	h.Withdraw(c)

	// Business rejection is not an HTTP error.
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, false, data["applied"])
	assert.Equal(t, "INSUFFICIENT_FUNDS", data["reason"])
	assert.Nil(t, data["transaction"])
}

func TestTransfer_SelfTransferIsOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	mockLedger.EXPECT().
		Transfer(gomock.Any(), int64(1), "addr1", "addr1", gomock.Any()).
		Return(&ports.OperationResult{Applied: false, Reason: ports.RejectSelfTransfer}, nil)

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 1, jsonRequest(t, http.MethodPost, "/api/v1/transfers",
		dto.TransferRequest{FromAddress: "addr1", ToAddress: "addr1", Amount: 5}))

	h.Transfer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, false, data["applied"])
	assert.Equal(t, "SELF_TRANSFER", data["reason"])
}

func TestTransfer_ForeignSourceForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransferHandler(mockLedger)

	mockLedger.EXPECT().
		Transfer(gomock.Any(), int64(2), "addr1", "addr2", gomock.Any()).
		Return(nil, apperror.ErrForbidden())

	w := httptest.NewRecorder()
	c := walletCtx(t, w, 2, jsonRequest(t, http.MethodPost, "/api/v1/transfers",
		dto.TransferRequest{FromAddress: "addr1", ToAddress: "addr2", Amount: 5}))

	h.Transfer(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_002")
}

// --- Statistics handler ---

func TestStatistics_AdminKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStats := mocks.NewMockStatisticsService(ctrl)
	h := NewStatisticsHandler(mockStats)

	mockStats.EXPECT().Compute(gomock.Any(), "admin_api_key").
		Return(&domain.Statistics{
			ProfitBTC:         decimal.RequireFromString("0.065"),
			ProfitUSD:         decimal.NewFromInt(1625),
			TotalTransactions: 3,
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	c.Request.Header.Set(middleware.HeaderAPIKey, "admin_api_key")

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "0.065", data["profit_btc"])
	assert.Equal(t, "1625", data["profit_usd"])
	assert.Equal(t, float64(3), data["total_transactions"])
}

func TestStatistics_NonAdminForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStats := mocks.NewMockStatisticsService(ctrl)
	h := NewStatisticsHandler(mockStats)

	mockStats.EXPECT().Compute(gomock.Any(), "key_user").
		Return(nil, apperror.ErrAdminOnly())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	c.Request.Header.Set(middleware.HeaderAPIKey, "key_user")

	h.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_006")
}

// decimalEq matches a decimal.Decimal by value rather than representation.
func decimalEq(want decimal.Decimal) gomock.Matcher {
	return decimalMatcher{want: want}
}

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "decimal equal to " + m.want.String() }

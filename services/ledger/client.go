package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/VeloPay/VeloPay-Console/models"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
)

const (
	msgWalletMissing     = "Wallet does not exist for this user. Please create a wallet first."
	msgBalanceFetchError = "An error occurred while fetching wallet balance"
	msgCreateError       = "An error occurred while creating wallet"
	msgCreateSuccess     = "Wallet created successfully!"
	msgTopUpError        = "An error occurred while topping up wallet"
	msgTopUpSuccess      = "Wallet topped up successfully!"
	msgTransferError     = "An error occurred while transferring funds"
	msgHistoryFetchError = "An error occurred while fetching transactions"
)

// Client is the single point of truth for wallet-ledger network operations.
// Every method normalizes transport and server failures into a Status so
// callers always receive a renderable outcome, never a raw error.
type Client struct {
	baseURL string
	client  *http.Client
	token   func() string
	logger  *logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTokenProvider sets the source of the bearer token sent on every
// request. Session management itself lives outside this client.
func WithTokenProvider(provider func() string) Option {
	return func(c *Client) { c.token = provider }
}

func WithStaticToken(token string) Option {
	return WithTokenProvider(func() string { return token })
}

func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		token:   func() string { return "" },
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetBalance fetches the authoritative balance. A 404 maps to
// WalletNotFound so callers can offer wallet creation instead of a generic
// error banner.
func (c *Client) GetBalance(ctx context.Context, userID int64) BalanceResult {
	resp, body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/wallet/%d", userID), nil)
	if err != nil {
		c.logger.WithField("user_id", userID).Error("Error fetching wallet balance: ", err)
		return BalanceResult{Status: failed(WalletFetchFailed, msgBalanceFetchError)}
	}

	if resp.StatusCode == http.StatusNotFound {
		return BalanceResult{Status: failed(WalletNotFound, msgWalletMissing)}
	}
	if resp.StatusCode != http.StatusOK {
		return BalanceResult{Status: failed(WalletFetchFailed, c.detail(body, msgBalanceFetchError))}
	}

	var payload models.BalanceResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Error decoding balance response: ", err)
		return BalanceResult{Status: failed(WalletFetchFailed, msgBalanceFetchError)}
	}

	return BalanceResult{Status: ok(""), Balance: payload.Balance}
}

// CreateWallet provisions a wallet for the user. Idempotency is not
// guaranteed here, callers must avoid duplicate submission.
func (c *Client) CreateWallet(ctx context.Context, userID int64) WalletResult {
	resp, body, err := c.do(ctx, http.MethodPost, "/transactions/wallet/create", models.CreateWalletRequest{UserID: userID})
	if err != nil {
		c.logger.WithField("user_id", userID).Error("Error creating wallet: ", err)
		return WalletResult{Status: failed(CreateFailed, msgCreateError)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return WalletResult{Status: failed(CreateFailed, c.detail(body, msgCreateError))}
	}

	var payload models.WalletResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Error decoding wallet response: ", err)
		return WalletResult{Status: failed(CreateFailed, msgCreateError)}
	}

	return WalletResult{Status: ok(msgCreateSuccess), Wallet: payload}
}

// TopUp credits the wallet. The server is authoritative for the resulting
// balance, callers must re-fetch rather than increment locally.
func (c *Client) TopUp(ctx context.Context, userID int64, intent TopUpIntent) MutationResult {
	path := fmt.Sprintf("/transactions/wallet/topup/%d", userID)
	resp, body, err := c.do(ctx, http.MethodPost, path, models.TopUpRequest{Amount: intent.Amount, Remark: intent.Remark})
	if err != nil {
		c.logger.WithField("user_id", userID).Error("Error topping up wallet: ", err)
		return MutationResult{Status: failed(TopUpFailed, msgTopUpError)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return MutationResult{Status: failed(TopUpFailed, c.detail(body, msgTopUpError))}
	}

	return MutationResult{Status: ok(c.message(body, msgTopUpSuccess))}
}

// Transfer moves funds to another user's wallet. The success confirmation
// message comes from the server, it is not constructed client-side.
func (c *Client) Transfer(ctx context.Context, fromUserID int64, intent TransferIntent) MutationResult {
	path := fmt.Sprintf("/transactions/wallet/transfer/%d", fromUserID)
	resp, body, err := c.do(ctx, http.MethodPost, path, models.TransferRequest{
		ToUserID: intent.ToUserID,
		Amount:   intent.Amount,
		Remark:   intent.Remark,
	})
	if err != nil {
		c.logger.WithField("user_id", fromUserID).Error("Error transferring funds: ", err)
		return MutationResult{Status: failed(TransferFailed, msgTransferError)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return MutationResult{Status: failed(TransferFailed, c.detail(body, msgTransferError))}
	}

	return MutationResult{Status: ok(c.message(body, ""))}
}

// GetTransactions fetches one page of history. A missing or malformed
// transactions field coerces to an empty slice so the history view never
// crashes on a bad page.
func (c *Client) GetTransactions(ctx context.Context, userID int64, limit, offset int32) TransactionsResult {
	path := fmt.Sprintf("/transactions/wallet/%d/transactions?%s", userID, url.Values{
		"limit":  {fmt.Sprint(limit)},
		"offset": {fmt.Sprint(offset)},
	}.Encode())

	resp, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.logger.WithField("user_id", userID).Error("Error fetching wallet transactions: ", err)
		return TransactionsResult{Status: failed(HistoryFetchFailed, msgHistoryFetchError), Transactions: []models.TransactionResponse{}}
	}

	if resp.StatusCode != http.StatusOK {
		return TransactionsResult{Status: failed(HistoryFetchFailed, c.detail(body, msgHistoryFetchError)), Transactions: []models.TransactionResponse{}}
	}

	var payload struct {
		Transactions json.RawMessage `json:"transactions"`
		TotalCount   int64           `json:"total_count"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Error decoding transactions response: ", err)
		return TransactionsResult{Status: failed(HistoryFetchFailed, msgHistoryFetchError), Transactions: []models.TransactionResponse{}}
	}

	transactions := []models.TransactionResponse{}
	if len(payload.Transactions) > 0 {
		if err := json.Unmarshal(payload.Transactions, &transactions); err != nil {
			c.logger.Warn("Malformed transactions field, coercing to empty list: ", err)
			transactions = []models.TransactionResponse{}
		}
	}

	return TransactionsResult{
		Status:       ok(""),
		Transactions: transactions,
		TotalCount:   payload.TotalCount,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// detail extracts the server's error detail for verbatim display, falling
// back to the generic message for unreadable bodies.
func (c *Client) detail(body []byte, fallback string) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	return fallback
}

func (c *Client) message(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

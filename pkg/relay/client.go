package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"

	"github.com/cotrace/relay-sdk-go/pkg/config"
	"github.com/cotrace/relay-sdk-go/pkg/contract"
	"github.com/cotrace/relay-sdk-go/pkg/model"
	"github.com/cotrace/relay-sdk-go/pkg/session"
)

// Client dispatches contract invocations against the session's relay. It is
// safe for concurrent use; the only shared mutable state is the session's
// JWT, which the session guards itself.
type Client struct {
	session  *session.Session
	http     *http.Client
	timeouts config.Timeouts
}

// NewClient constructs a relay client bound to the given session. Timeouts
// are applied per operation; zero values are replaced by defaults.
func NewClient(sess *session.Session, timeouts config.Timeouts) *Client {
	return &Client{
		session:  sess,
		http:     &http.Client{},
		timeouts: timeouts.WithDefaults(),
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// requestBody is the wire shape shared by /call and /sendTransaction.
type requestBody struct {
	InterfaceName   string `json:"interfaceName"`
	InstanceAddress string `json:"instanceAddress"`
	Method          string `json:"method"`
	Params          []any  `json:"params"`
}

// historyBody is the wire shape of /history.
type historyBody struct {
	Token string `json:"token"`
	Tnx   string `json:"tnx"`
}

// Call performs a read-only invocation and returns the relay's JSON payload
// verbatim. Use CallInto or CallAs for a typed result.
func (c *Client) Call(ctx context.Context, inv contract.Invocation) (json.RawMessage, error) {
	if err := validate(inv); err != nil {
		return nil, err
	}
	return c.do(ctx, callPath, invocationBody(inv), c.timeouts.Call)
}

// CallInto performs a read-only invocation and decodes the relay's response
// into out. Decoding happens at the boundary, so a payload that does not
// match the expected shape fails here instead of at a later blind cast.
func (c *Client) CallInto(ctx context.Context, inv contract.Invocation, out any) error {
	raw, err := c.Call(ctx, inv)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode call result: %w", err)
	}
	return nil
}

// CallAs performs a read-only invocation typed over the expected result shape.
func CallAs[T any](ctx context.Context, c *Client, inv contract.Invocation) (T, error) {
	var out T
	err := c.CallInto(ctx, inv, &out)
	return out, err
}

// SendTransaction performs a state-changing invocation and returns the
// transaction receipt. Raw logs are returned undecoded; use
// SendTransactionWithABI to bind events by name.
func (c *Client) SendTransaction(ctx context.Context, inv contract.Invocation) (*model.TransactionReceipt, error) {
	return c.sendTransaction(ctx, inv, nil)
}

// SendTransactionWithABI performs a state-changing invocation and decodes the
// receipt logs against the supplied contract ABI, filling the receipt's
// DecodedLog and ParsedLog fields.
func (c *Client) SendTransactionWithABI(ctx context.Context, inv contract.Invocation, contractABI *abi.ABI) (*model.TransactionReceipt, error) {
	if contractABI == nil {
		return nil, fmt.Errorf("contract ABI is required")
	}
	return c.sendTransaction(ctx, inv, contractABI)
}

func (c *Client) sendTransaction(ctx context.Context, inv contract.Invocation, contractABI *abi.ABI) (*model.TransactionReceipt, error) {
	if err := validate(inv); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, sendTransactionPath, invocationBody(inv), c.timeouts.Submit)
	if err != nil {
		return nil, err
	}

	receipt := &model.TransactionReceipt{}
	if err := json.Unmarshal(raw, receipt); err != nil {
		return nil, fmt.Errorf("decode transaction receipt: %w", err)
	}

	if contractABI != nil {
		if err := DecodeReceiptEvents(receipt, contractABI); err != nil {
			zap.L().Error("failed to decode receipt events",
				zap.String("tx", receipt.TransactionHash), zap.Error(err))
			return nil, err
		}
	}
	return receipt, nil
}

// History returns the ordered list of prior invocations recorded by the
// relay for the given token and transaction filter. Admin surface: the relay
// accepts it with the private API key only.
func (c *Client) History(ctx context.Context, token, tnx string) ([]model.HistoryRecord, error) {
	if c.session.Mode() != session.ModePrivate {
		return nil, fmt.Errorf("history requires a private-key session")
	}

	raw, err := c.do(ctx, historyPath, historyBody{Token: token, Tnx: tnx}, c.timeouts.HistoryRead)
	if err != nil {
		return nil, err
	}

	var records []model.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return records, nil
}

// validate enforces the invocation precondition: interface name, instance
// address and method name must all be non-empty before any network call.
func validate(inv contract.Invocation) error {
	if inv.Complete() {
		return nil
	}
	switch {
	case inv.Instance.Interface.Name == "":
		return &ValidationError{Field: "interface name"}
	case inv.Instance.Address == "":
		return &ValidationError{Field: "instance address"}
	case inv.Method == "":
		return &ValidationError{Field: "method name"}
	}
	return nil
}

func invocationBody(inv contract.Invocation) requestBody {
	params := inv.Args
	if params == nil {
		params = []any{}
	}
	return requestBody{
		InterfaceName:   inv.Instance.Interface.Name,
		InstanceAddress: inv.Instance.Address,
		Method:          inv.Method,
		Params:          params,
	}
}

// do posts body to the relay path and returns the response payload. The only
// built-in retry is the one-shot JWT refresh on 401 in public-key mode,
// implemented as a bounded loop so pathological relay behavior cannot cause
// unbounded recursion. Refresh strictly precedes the retried request.
func (c *Client) do(ctx context.Context, path string, body any, timeout time.Duration) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	attempts := 0
	for {
		attempts++
		status, statusText, respBody, err := c.post(ctx, path, payload, timeout)
		if err != nil {
			zap.L().Error("relay request failed", zap.String("path", path), zap.Error(err))
			return nil, &NetworkError{Err: err}
		}

		switch {
		case status >= 200 && status < 300:
			return respBody, nil
		case status == http.StatusUnauthorized:
			if c.session.Mode() != session.ModePublic || attempts > 1 {
				zap.L().Warn("relay rejected credentials",
					zap.String("path", path), zap.Int("attempts", attempts))
				return nil, &UnauthorizedError{Attempts: attempts}
			}
			if err := c.reloadJWT(ctx); err != nil {
				return nil, err
			}
			zap.L().Debug("retrying with refreshed jwt", zap.String("path", path))
		default:
			zap.L().Warn("relay returned unexpected status",
				zap.String("path", path), zap.Int("status", status))
			return nil, &HTTPError{Status: status, StatusText: statusText}
		}
	}
}

// reloadJWT refreshes the session token under the configured JWTRefresh
// deadline, so a hung identity provider cannot block the invocation forever.
func (c *Client) reloadJWT(ctx context.Context) error {
	if c.timeouts.JWTRefresh > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeouts.JWTRefresh)
		defer cancel()
	}
	return c.session.ReloadJWT(ctx)
}

// post issues one HTTP request with credential headers read from the session
// at send time, so a refreshed JWT is picked up by the retry.
func (c *Client) post(ctx context.Context, path string, payload []byte, timeout time.Duration) (int, string, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	url := strings.TrimRight(c.session.RelayAddr(), "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	switch c.session.Mode() {
	case session.ModePrivate:
		req.Header.Set(AuthTypeHeader, AuthTypePrivate)
		req.Header.Set(PrivateAPIKeyHeader, c.session.PrivateAPIKey())
	case session.ModePublic:
		req.Header.Set(AuthTypeHeader, AuthTypePublic)
		req.Header.Set(PublicAPIKeyHeader, c.session.PublicAPIKey())
		req.Header.Set(JWTHeader, c.session.JWT())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Error("failed to close relay response body", zap.Error(err))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}

	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	return resp.StatusCode, statusText, respBody, nil
}

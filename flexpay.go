// Package flexpay is a typed client for the FlexPay payment gateway REST
// API: payment methods, charges, authorizations, captures, voids, refunds
// and transaction lookup.
//
// Every call is a single request/response round trip. A well-formed gateway
// outcome, approved or not, is returned as a typed response tagged with its
// ResponseCode; only transport failures and local validation problems come
// back as errors.
package flexpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.flexpay.io/v1"

const defaultTimeout = 30 * time.Second

// ClientOptions configures a Client. Only AuthorizationToken is required.
type ClientOptions struct {
	// AuthorizationToken is the bearer credential issued by the gateway.
	AuthorizationToken string

	// BaseURL overrides DefaultBaseURL, e.g. to point at the sandbox.
	BaseURL string

	// HTTPClient is the transport used for every call. Defaults to a client
	// with a 30 second timeout. It must be safe for concurrent use.
	HTTPClient *http.Client

	// DebugOutput logs every request and response body through Logger.
	DebugOutput bool

	// Logger receives debug output. Defaults to slog.Default when
	// DebugOutput is set, otherwise discards.
	Logger *slog.Logger
}

// Client talks to the gateway. It holds no per-call state and is safe for
// concurrent use; calls have no ordering guarantee relative to each other.
type Client struct {
	baseURL            string
	authorizationToken string
	httpClient         *http.Client
	logger             *slog.Logger
	debug              bool

	PaymentMethods *PaymentMethodsService
	Transactions   *TransactionsService
	Charge         *ChargeService
	Authorize      *AuthorizeService
	Capture        *CaptureService
	Void           *VoidService
	Refund         *RefundService
	HealthCheck    *HealthCheckService
}

func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.AuthorizationToken) == "" {
		return nil, &ValidationError{Message: "authorization token is required"}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		if opts.DebugOutput {
			logger = slog.Default()
		} else {
			logger = slog.New(slog.DiscardHandler)
		}
	}

	c := &Client{
		baseURL:            baseURL,
		authorizationToken: opts.AuthorizationToken,
		httpClient:         httpClient,
		logger:             logger,
		debug:              opts.DebugOutput,
	}

	c.PaymentMethods = &PaymentMethodsService{client: c}
	c.Transactions = &TransactionsService{client: c}
	c.Charge = &ChargeService{client: c}
	c.Authorize = &AuthorizeService{client: c}
	c.Capture = &CaptureService{client: c}
	c.Void = &VoidService{client: c}
	c.Refund = &RefundService{client: c}
	c.HealthCheck = &HealthCheckService{client: c}

	return c, nil
}

// BaseURL returns the resolved endpoint the client calls.
func (c *Client) BaseURL() string { return c.baseURL }

// classified is satisfied by every response type that embeds Envelope.
type classified interface {
	setHTTPStatus(int)
}

var (
	logCardNumber = regexp.MustCompile(`("creditCardNumber"\s*:\s*"\d{6})\d+(\d{4}")`)
	logCVV        = regexp.MustCompile(`("cvv"\s*:\s*")[^"]+(")`)
)

// redactForLog masks card data before a body reaches the debug log. Numbers
// keep the first six and last four digits, the shape the gateway itself
// returns them in; CVVs are masked entirely.
func redactForLog(data []byte) string {
	out := logCardNumber.ReplaceAll(data, []byte("${1}******${2}"))
	out = logCVV.ReplaceAll(out, []byte("${1}***${2}"))
	return string(out)
}

// do performs one authenticated JSON round trip and decodes the body. The
// body's responseCode is authoritative: any parseable body is returned as a
// typed response no matter the HTTP status, and only an unparseable body or
// a failed round trip yields a *TransportError.
func do[Req any, Resp any](ctx context.Context, c *Client, op, method, path string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("%s: cannot encode request: %v", op, err)}
		}
		if c.debug {
			c.logger.Debug("flexpay request", "op", op, "method", method, "path", path, "body", redactForLog(data))
		}
		bodyReader = bytes.NewReader(data)
	} else if c.debug {
		c.logger.Debug("flexpay request", "op", op, "method", method, "path", path)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.authorizationToken)
	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, HTTPStatus: httpResp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if c.debug {
		c.logger.Debug("flexpay response", "op", op, "status", httpResp.StatusCode, "body", redactForLog(data))
	}

	var decoded Resp
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &TransportError{Op: op, HTTPStatus: httpResp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if tagged, ok := any(&decoded).(classified); ok {
		tagged.setHTTPStatus(httpResp.StatusCode)
	}

	return &decoded, nil
}

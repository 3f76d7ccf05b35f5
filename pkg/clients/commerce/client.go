package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/flowbaker/commerce-go/internal/version"
	"github.com/flowbaker/commerce-go/pkg/utils/pagination"
	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	HeaderAPIKey    = "x-api-key"
	HeaderHash      = "hash"
	HeaderSessionID = "x-session-id"
	HeaderRequestID = "x-request-id"
)

// ClientInterface defines the operations offered by the commerce client
type ClientInterface interface {
	// Core request pipeline
	Execute(ctx context.Context, spec RequestSpec) (*Response, error)

	// Pagination
	HasNext() bool
	FetchNext(ctx context.Context) (*Response, error)
	NextPage(ctx context.Context, resp *Response) (*Response, error)
	EachPage(ctx context.Context, spec RequestSpec, fn func(*Response) error) error

	// Resource operations
	Get(ctx context.Context, opts GetOptions) (*Response, error)
	List(ctx context.Context, opts ListOptions) (*Response, error)
	Build(ctx context.Context, opts BuildOptions) (*Response, error)
	Update(ctx context.Context, opts UpdateOptions) (*Response, error)
	Delete(ctx context.Context, opts DeleteOptions) (*Response, error)

	// Session state
	LastResponse() *Response
	LastEndpoint() string
}

var _ ClientInterface = (*Client)(nil)

type credential struct {
	sharedKey  string
	privateKey string
}

// String keeps the private key out of logs and fmt output
func (c credential) String() string {
	return fmt.Sprintf("credential{sharedKey: %s, privateKey: [redacted]}", c.sharedKey)
}

// Client talks to the commerce platform.
//
// Execute calls on one Client are serialized: only one request is in flight per
// instance. Each call returns its own Response; LastResponse, LastEndpoint and
// the pagination cursor reflect the most recent completed call.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	credential credential
	sessionID  string
	limiter    *rate.Limiter
	logger     zerolog.Logger

	mu           sync.Mutex
	cursor       pagination.Cursor
	lastResponse *Response
	lastEndpoint string
}

// NewClient creates a new commerce client for the given key pair
func NewClient(sharedKey, privateKey string, options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	if config.UserAgent == "" {
		config.UserAgent = version.UserAgent(config.ProviderName)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(config.RateLimit, burst)
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		credential: credential{
			sharedKey:  sharedKey,
			privateKey: privateKey,
		},
		sessionID: uuid.NewString(),
		limiter:   limiter,
		logger:    config.logger().With().Str("provider", config.ProviderName).Logger(),
	}
}

func (c *Client) Version() int {
	return c.config.Version
}

func (c *Client) ProviderName() string {
	return c.config.ProviderName
}

// SessionID identifies this client instance to the platform
func (c *Client) SessionID() string {
	return c.sessionID
}

// Execute signs and sends a request and normalizes the JSON response.
//
// Transport failures return a *TransportError and no Response. A body that is
// not valid JSON returns a Response with nil Data together with a
// *MalformedResponseError. Non-2xx statuses are not errors; see Response.Err.
func (c *Client) Execute(ctx context.Context, spec RequestSpec) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.execute(ctx, spec)
}

// execute runs one call; the caller holds c.mu
func (c *Client) execute(ctx context.Context, spec RequestSpec) (*Response, error) {
	c.cursor.Reset()

	method := strings.ToUpper(spec.Method)
	if method == "" {
		method = http.MethodGet
	}

	signed, err := c.SignRequest(spec)
	if err != nil {
		return nil, err
	}
	endpoint, body := signed.Endpoint, signed.Body

	var requestBody io.Reader
	if body != nil {
		requestBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := xid.New().String()
	c.applyHeaders(req, signed.Hash, requestID, body != nil)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
		}
	}

	startedAt := time.Now()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Str("request_id", requestID).
			Msg("commerce request failed")

		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status_code", httpResp.StatusCode).
		Dur("duration", time.Since(startedAt)).
		Msg("commerce request completed")

	resp := &Response{
		StatusCode:        httpResp.StatusCode,
		RawBody:           string(rawBody),
		RequestedEndpoint: endpoint,
		RequestID:         requestID,
		Header:            httpResp.Header.Clone(),
	}

	c.lastResponse = resp
	c.lastEndpoint = endpoint

	payload, kind, err := decodePayload(rawBody, c.config.MaxResponseDepth)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("endpoint", endpoint).
			Int("status_code", httpResp.StatusCode).
			Msg("malformed commerce response")

		return resp, &MalformedResponseError{
			Kind:       kind,
			StatusCode: httpResp.StatusCode,
			Err:        err,
		}
	}

	resp.Data = payload

	c.cursor.Update(payload)
	resp.HasNextPage = c.cursor.HasNext()
	resp.NextPageToken = c.cursor.NextPage()

	return resp, nil
}

// resetCursor drops any next page left by an earlier call
func (c *Client) resetCursor() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor.Reset()
}

// LastResponse returns the Response of the most recent completed call, if any
func (c *Client) LastResponse() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastResponse
}

// LastEndpoint returns the URL requested by the most recent completed call
func (c *Client) LastEndpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastEndpoint
}

// resolveEndpoint returns the URL to request and the path to sign. Both carry
// spaces as %20 so the signed path matches the requested one byte for byte.
func (c *Client) resolveEndpoint(spec RequestSpec) (endpoint, signedPath string) {
	baseURL := strings.TrimSuffix(c.config.BaseURL, "/")

	switch {
	case strings.HasPrefix(spec.OverrideURL, "/"):
		endpoint = baseURL + spec.OverrideURL
	case spec.OverrideURL != "":
		endpoint = spec.OverrideURL
	default:
		endpoint = fmt.Sprintf("%s/v%d/%s", baseURL, c.config.Version, strings.TrimPrefix(spec.Path, "/"))
		if query := spec.Query.Encode(); query != "" {
			separator := "?"
			if strings.Contains(endpoint, "?") {
				separator = "&"
			}
			endpoint += separator + query
		}
	}

	endpoint = encodeSpaces(endpoint)

	if strings.HasPrefix(endpoint, baseURL+"/") {
		return endpoint, strings.TrimPrefix(endpoint, baseURL)
	}

	// Endpoint on another host: sign its request URI
	if parsed, err := url.Parse(endpoint); err == nil {
		return endpoint, parsed.RequestURI()
	}

	return endpoint, endpoint
}

func encodeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}

// SignedRequest is the signing material Execute derives from a RequestSpec
type SignedRequest struct {
	Endpoint   string
	SignedPath string
	// Body is nil when the request carries no body; it is signed as null
	Body      json.RawMessage
	Canonical []byte
	Hash      string
}

// SignRequest resolves the endpoint of spec and computes its hash header
// without sending anything.
func (c *Client) SignRequest(spec RequestSpec) (*SignedRequest, error) {
	endpoint, signedPath := c.resolveEndpoint(spec)

	body, err := encodeBody(spec.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	canonical, err := auth.EncodeCanonicalRequest(signedPath, body, c.credential.sharedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode canonical request: %w", err)
	}

	hash, err := auth.Sign(canonical, c.credential.privateKey, c.config.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	return &SignedRequest{
		Endpoint:   endpoint,
		SignedPath: signedPath,
		Body:       body,
		Canonical:  canonical,
		Hash:       hash,
	}, nil
}

func (c *Client) applyHeaders(req *http.Request, hash, requestID string, hasBody bool) {
	req.Header.Set("Accept", "application/json")

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set(HeaderSessionID, c.sessionID)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderAPIKey, c.credential.sharedKey)
	req.Header.Set(HeaderHash, hash)
}

// encodeBody renders a request body as compact JSON without HTML or slash
// escaping. Empty bodies (null, {}, [] and "") yield nil.
func encodeBody(body any) (json.RawMessage, error) {
	if body == nil {
		return nil, nil
	}

	var raw []byte
	switch v := body.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(v); err != nil {
			return nil, err
		}
		raw = buf.Bytes()
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return nil, err
	}

	switch compacted.String() {
	case "", "null", "{}", "[]", `""`:
		return nil, nil
	}

	return json.RawMessage(compacted.Bytes()), nil
}

// decodePayload parses a response body. An empty body is not an error.
func decodePayload(raw []byte, maxDepth int) (any, MalformedKind, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, "", nil
	}

	if !utf8.Valid(raw) {
		return nil, MalformedSyntax, fmt.Errorf("response body is not valid UTF-8")
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, classifyDecodeError(err), err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, MalformedSyntax, fmt.Errorf("unexpected data after top-level value")
	}

	if maxDepth > 0 && nestingDepth(payload) > maxDepth {
		return nil, MalformedDepth, fmt.Errorf("maximum nesting depth of %d exceeded", maxDepth)
	}

	return payload, "", nil
}

func classifyDecodeError(err error) MalformedKind {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return MalformedSyntax
	}

	message := syntaxErr.Error()
	switch {
	case strings.Contains(message, "exceeded max depth"):
		return MalformedDepth
	case strings.Contains(message, "in string literal"):
		return MalformedControlCharacter
	default:
		return MalformedSyntax
	}
}

func nestingDepth(value any) int {
	deepest := 0

	switch v := value.(type) {
	case map[string]any:
		for _, child := range v {
			if depth := nestingDepth(child); depth > deepest {
				deepest = depth
			}
		}
		return deepest + 1
	case []any:
		for _, child := range v {
			if depth := nestingDepth(child); depth > deepest {
				deepest = depth
			}
		}
		return deepest + 1
	default:
		return 0
	}
}

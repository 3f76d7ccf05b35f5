// Package commerce provides a Go SDK for the commerce platform REST API.
//
// Every request is signed with an HMAC over a canonical JSON rendering of the
// request path, body and shared key, sent in the "hash" header next to the
// "x-api-key" header. The signature carries no timestamp or nonce, so a
// captured request stays valid for as long as the key pair does; this is a
// property of the platform protocol.
//
// Empty request bodies (nil, null, {}, [] and "") are not sent. The platform
// reads such a request as having no input, so the canonical request carries
// "input":null for all of them and the signature matches what it verifies.
package commerce

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// QueryParam is a single query string entry
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered set of query string parameters. Encode keeps insertion order.
type Query []QueryParam

// NewQuery builds a query from alternating keys and values
func NewQuery(pairs ...string) Query {
	query := make(Query, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		query = query.Set(pairs[i], value)
	}
	return query
}

// Set replaces the value of key or appends it when absent
func (q Query) Set(key, value string) Query {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return append(q, QueryParam{Key: key, Value: value})
}

func (q Query) Get(key string) (string, bool) {
	for _, param := range q {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Encode renders the query in form encoding without the leading "?"
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	parts := make([]string, 0, len(q))
	for _, param := range q {
		parts = append(parts, url.QueryEscape(param.Key)+"="+url.QueryEscape(param.Value))
	}
	return strings.Join(parts, "&")
}

// RequestSpec describes one logical API call
type RequestSpec struct {
	Method string
	// Path is relative to /v<version>/, e.g. "orders/14"
	Path  string
	Query Query
	// Body is marshalled to JSON; json.RawMessage and []byte are used as is
	Body any
	// OverrideURL replaces Path and Query. Values starting with "/" are joined to the base URL.
	OverrideURL string
}

// Response is the normalized result of a single call. Each call returns a
// fresh Response; later calls on the same client never modify it.
type Response struct {
	StatusCode int
	// Data is the decoded JSON payload (numbers as json.Number), nil when the
	// body is empty or malformed
	Data              any
	RawBody           string
	HasNextPage       bool
	NextPageToken     string
	RequestedEndpoint string
	RequestID         string
	Header            http.Header
}

// IsSuccess reports whether the platform answered with a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the raw body into v
func (r *Response) Decode(v any) error {
	if strings.TrimSpace(r.RawBody) == "" {
		return fmt.Errorf("response body is empty")
	}
	if err := json.Unmarshal([]byte(r.RawBody), v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Err returns an *Error for 4xx and 5xx responses and nil otherwise
func (r *Response) Err() error {
	if r.StatusCode < 400 {
		return nil
	}

	message := http.StatusText(r.StatusCode)
	if payload, ok := r.Data.(map[string]any); ok {
		if msg, ok := payload["message"].(string); ok && msg != "" {
			message = msg
		}
	}

	requestID := r.RequestID
	if r.Header != nil && r.Header.Get("X-Request-ID") != "" {
		requestID = r.Header.Get("X-Request-ID")
	}

	return &Error{
		StatusCode: r.StatusCode,
		Message:    message,
		Body:       r.RawBody,
		RequestID:  requestID,
	}
}

// GetOptions selects a single resource, optionally a nested one below it
type GetOptions struct {
	Type     ResourceType `json:"type"`
	ID       string       `json:"id"`
	Nested   ResourceType `json:"nested"`
	NestedID string       `json:"nestedId"`
	Query    Query        `json:"-"`
}

type ListOptions struct {
	Type  ResourceType `json:"type"`
	Query Query        `json:"-"`
}

// BuildOptions creates a resource from Data
type BuildOptions struct {
	Type ResourceType `json:"type"`
	Data any          `json:"data"`
}

type UpdateOptions struct {
	Type ResourceType `json:"type"`
	ID   string       `json:"id"`
	Data any          `json:"data"`
}

type DeleteOptions struct {
	Type ResourceType `json:"type"`
	ID   string       `json:"id"`
}

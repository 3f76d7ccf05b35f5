package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type canonicalData struct {
	Input      json.RawMessage `json:"input"`
	RequestURI string          `json:"requestURI"`
}

type canonicalRequest struct {
	Data      canonicalData `json:"data"`
	SharedKey string        `json:"sharedKey"`
}

// EncodeCanonicalRequest serializes the signable part of a request.
//
// The output is {"data":{"input":<body>,"requestURI":<path>},"sharedKey":<key>}
// with no whitespace and no escaping of '/', '<', '>' or '&'. A nil body is
// encoded as null. The path is used verbatim; callers replace spaces with %20
// before signing.
func EncodeCanonicalRequest(path string, body json.RawMessage, sharedKey string) ([]byte, error) {
	req := canonicalRequest{
		Data: canonicalData{
			Input:      body,
			RequestURI: path,
		},
		SharedKey: sharedKey,
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to encode canonical request: %w", err)
	}

	// Encode terminates the value with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
